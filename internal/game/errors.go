// internal/game/errors.go
package game

import "fmt"

// RejectCode classifies why an action was refused.
type RejectCode string

const (
	CodeRoomFull           RejectCode = "roomFull"
	CodeNameTaken          RejectCode = "nameTaken"
	CodeGameInProgress     RejectCode = "gameInProgress"
	CodeNotEnoughPlayers   RejectCode = "notEnoughPlayers"
	CodeOutOfTurn          RejectCode = "outOfTurn"
	CodeIllegalCombination RejectCode = "illegalCardCombination"
	CodeWrongResponder     RejectCode = "wrongResponderForPrompt"
	CodeMissingCard        RejectCode = "missingRequiredCard"
)

// Rejection is a recoverable refusal of a single action. Room state is left
// unchanged and only the issuing connection is told. The reason carries enough
// context (current suit/rank/pending effect) to reconstruct the refusal.
type Rejection struct {
	Code   RejectCode
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}

func reject(code RejectCode, format string, args ...interface{}) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}
