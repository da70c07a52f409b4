package spectator

import (
	"encoding/json"
	"time"

	"github.com/lox/matchsim/tennis"
)

// MessageType identifies the payload of a Message
type MessageType string

const (
	MessageTypeSnapshot   MessageType = "snapshot"
	MessageTypeMatchStart MessageType = "match_start"
	MessageTypePoint      MessageType = "point"
	MessageTypeGame       MessageType = "game"
	MessageTypeSet        MessageType = "set"
	MessageTypeMatchEnd   MessageType = "match_end"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for everything sent over the websocket
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Server → Client payloads

type MatchStartData struct {
	MatchID  string          `json:"matchId"`
	Seed     int64           `json:"seed"`
	Snapshot tennis.Snapshot `json:"snapshot"`
}

type PointData struct {
	Set      int             `json:"set"`
	Game     int             `json:"game"`
	Point    tennis.Point    `json:"point"`
	Snapshot tennis.Snapshot `json:"snapshot"`
}

type GameData struct {
	Set      int               `json:"set"`
	Game     int               `json:"game"`
	Record   tennis.GameRecord `json:"record"`
	Snapshot tennis.Snapshot   `json:"snapshot"`
}

type SetData struct {
	Set      int             `json:"set"`
	Score    tennis.SetScore `json:"score"`
	Summary  string          `json:"summary"`
	Snapshot tennis.Snapshot `json:"snapshot"`
}

type MatchEndData struct {
	Winner   string          `json:"winner"`
	Score    string          `json:"score"`
	Summary  string          `json:"summary"`
	Snapshot tennis.Snapshot `json:"snapshot"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client → Server requests. Spectators may only ask for the current state.

type Request struct {
	Type MessageType `json:"type"`
}
