// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. Nil when no Redis is configured; callers
// nil-guard and skip publishing in that case.
var Rdb *redis.Client

// InitRedis connects the shared client and verifies the connection with a
// ping.
func InitRedis(ctx context.Context, addr string) error {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}
	Rdb = client
	logrus.WithField("addr", addr).Info("connected to redis")
	return nil
}

// GameActionRecord is one entry in a room's ordered action history.
type GameActionRecord struct {
	RoomCode    string                 `json:"roomCode"`
	ActionIndex int                    `json:"actionIndex"`
	ActorID     uuid.UUID              `json:"actorId"`
	ActionType  string                 `json:"actionType"`
	Payload     map[string]interface{} `json:"payload"`
	Timestamp   int64                  `json:"timestamp"`
}

func actionListKey(roomCode string) string {
	return fmt.Sprintf("room:%s:actions", roomCode)
}

// PublishGameAction appends an action record to the room's history list. The
// list expires a day after its last write so abandoned rooms age out.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	key := actionListKey(rec.RoomCode)
	pipe := Rdb.Pipeline()
	pipe.RPush(ctx, key, raw)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish action: %w", err)
	}
	return nil
}

// RoomActionHistory reads back a room's full action history in order.
func RoomActionHistory(ctx context.Context, roomCode string) ([]GameActionRecord, error) {
	if Rdb == nil {
		return nil, nil
	}
	raws, err := Rdb.LRange(ctx, actionListKey(roomCode), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read action history: %w", err)
	}
	records := make([]GameActionRecord, 0, len(raws))
	for _, raw := range raws {
		var rec GameActionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			logrus.WithError(err).Warn("skipping malformed action record")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
