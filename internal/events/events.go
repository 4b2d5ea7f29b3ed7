package events

import (
	"encoding/json"
	"fmt"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeGameStarted   = "game_started"
	TypeMoveApplied   = "move_applied"
	TypeGameOver      = "game_over"
	TypeGameRestarted = "game_restarted"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// New marshals payload into an Event of the given type.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// GameStartedPayload is the payload for the "game_started" event.
type GameStartedPayload struct {
	RoomID    string            `json:"room_id"`
	GameID    string            `json:"game_id"`
	Width     int               `json:"width"`
	FirstMark string            `json:"first_mark"`
	Players   map[string]string `json:"players"`
}

// MoveAppliedPayload is the payload for the "move_applied" event.
type MoveAppliedPayload struct {
	RoomID string   `json:"room_id"`
	GameID string   `json:"game_id"`
	Mark   string   `json:"mark"`
	Cell   int      `json:"cell"`
	Board  []string `json:"board"`
}

// GameOverPayload is the payload for the "game_over" event.
type GameOverPayload struct {
	RoomID string `json:"room_id"`
	GameID string `json:"game_id"`
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Moves  int    `json:"moves"`
}

// GameRestartedPayload is the payload for the "game_restarted" event.
type GameRestartedPayload struct {
	RoomID     string `json:"room_id"`
	PreviousID string `json:"previous_game_id"`
	GameID     string `json:"game_id"`
}
