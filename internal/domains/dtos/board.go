package dtos

import "time"

const (
	PayloadTypePosition = "position"
	PayloadTypeQuit     = "quit"
)

// Payload is the message shape exchanged with board display clients.
type Payload struct {
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func PositionPayload(fen string) Payload {
	return Payload{
		Type:      PayloadTypePosition,
		Data:      map[string]string{"fen": fen},
		CreatedAt: time.Now(),
	}
}
