// internal/ws/ws.go
package ws

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/avigoodman4-jpg/Dink-Game/internal/auth"
	"github.com/avigoodman4-jpg/Dink-Game/internal/game"
	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

const writeTimeout = 5 * time.Second

// Server bridges websocket connections to the room registry. Each connection
// runs one read loop; events flow back through the per-player send hook that
// rooms call while holding their lock, so writes to a single connection are
// already serialized.
type Server struct {
	registry *game.Registry
	secret   []byte
}

// NewServer wires a server to the registry, attaching the websocket send hook
// to every room the registry creates.
func NewServer(registry *game.Registry, secret []byte) *Server {
	s := &Server{registry: registry, secret: secret}
	registry.ConfigureRoom = func(room *game.Room) {
		room.Send = s.sendEvent
	}
	return s
}

func (s *Server) sendEvent(p *models.Player, ev game.Event) {
	if p.Conn == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, p.Conn, ev); err != nil {
		logrus.WithError(err).WithField("player", p.Name).Debug("dropped outbound event")
	}
}

// clientMessage is the single inbound frame shape; Type selects which of the
// optional fields matter.
type clientMessage struct {
	Type             string `json:"type"`
	Name             string `json:"name,omitempty"`
	RoomCode         string `json:"roomCode,omitempty"`
	CardIndices      []int  `json:"cardIndices,omitempty"`
	Suit             string `json:"suit,omitempty"`
	Accept           *bool  `json:"accept,omitempty"`
	CardIndex        *int   `json:"cardIndex,omitempty"`
	TargetPlayerName string `json:"targetPlayerName,omitempty"`
	Message          string `json:"message,omitempty"`
	Token            string `json:"token,omitempty"`
}

// Handler upgrades requests and serves the connection until it drops.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logrus.WithError(err).Debug("websocket accept failed")
			return
		}
		s.serve(r.Context(), conn)
	})
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close(websocket.StatusInternalError, "server closing")

	var player *models.Player
	var roomCode string

	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			break
		}

		if player == nil {
			if msg.Type != "joinRoom" {
				s.writeError(ctx, conn, "joinRoom must be the first message")
				continue
			}
			p, code, err := s.join(conn, msg)
			if err != nil {
				s.writeError(ctx, conn, err.Error())
				continue
			}
			player, roomCode = p, code
			continue
		}

		room := s.registry.Get(roomCode)
		if room == nil {
			break
		}
		s.dispatch(room, player, msg)
	}

	if player != nil {
		s.registry.HandleDisconnect(roomCode, player.ID)
		logrus.WithFields(logrus.Fields{"player": player.Name, "room": roomCode}).Info("connection closed")
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) join(conn *websocket.Conn, msg clientMessage) (*models.Player, string, error) {
	// A session token resumes a held seat instead of taking a new one.
	if msg.Token != "" {
		claims, err := auth.ParseSessionToken(s.secret, msg.Token)
		if err != nil {
			return nil, "", errors.New("invalid session token")
		}
		room := s.registry.Get(claims.RoomCode)
		if room == nil {
			return nil, "", errors.New("room no longer exists")
		}
		p, err := room.ReattachPlayer(claims.PlayerID, conn)
		if err != nil {
			return nil, "", err
		}
		return p, room.Code, nil
	}

	name := strings.TrimSpace(msg.Name)
	code := strings.ToUpper(strings.TrimSpace(msg.RoomCode))
	if name == "" || code == "" {
		return nil, "", errors.New("joinRoom needs a name and a room code")
	}

	p := models.NewPlayer(name, conn)
	room, err := s.registry.CreateOrJoin(code, p)
	if err != nil {
		return nil, "", err
	}

	if token, terr := auth.CreateSessionToken(s.secret, p.ID, room.Code, p.Name); terr == nil {
		s.sendEvent(p, game.Event{Type: game.EventSessionToken, Payload: map[string]interface{}{
			"token": token,
		}})
	} else {
		logrus.WithError(terr).Warn("could not issue session token")
	}
	return p, room.Code, nil
}

func (s *Server) dispatch(room *game.Room, p *models.Player, msg clientMessage) {
	var err error
	switch msg.Type {
	case "pickDealer":
		err = room.PickDealer(p.ID)
	case "startGame":
		err = room.StartGame(p.ID)
	case "playCards":
		err = room.HandlePlay(p.ID, msg.CardIndices)
	case "drawCard":
		err = room.HandleDraw(p.ID)
	case "chooseSuit":
		err = room.HandleChooseSuit(p.ID, models.Suit(msg.Suit))
	case "dealerPenaltyChoice":
		accept := msg.Accept != nil && *msg.Accept
		cardIndex := -1
		if msg.CardIndex != nil {
			cardIndex = *msg.CardIndex
		}
		err = room.HandleDealerPenalty(p.ID, accept, cardIndex)
	case "declareLastCard":
		err = room.HandleDeclareLastCard(p.ID)
	case "catchLastCard":
		err = room.HandleCatchLastCard(p.ID, msg.TargetPlayerName)
	case "nextRound":
		err = room.NextRound(p.ID)
	case "chat":
		room.Chat(p.ID, msg.Message)
	default:
		logrus.WithFields(logrus.Fields{"player": p.Name, "type": msg.Type}).Debug("unknown message type")
		return
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"player": p.Name, "type": msg.Type}).Warn("action failed")
	}
}

func (s *Server) writeError(ctx context.Context, conn *websocket.Conn, reason string) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = wsjson.Write(wctx, conn, game.Event{Type: game.EventInvalidPlay, Payload: map[string]interface{}{
		"reason": reason,
	}})
}
