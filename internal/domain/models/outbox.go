package models

import (
	"encoding/json"
)

// OutBoxMessage is a pending publication. Rows are written in the same
// transaction as the order change they announce and drained to Kafka by
// the relay.
type OutBoxMessage struct {
	ID        int64           `json:"id" db:"id"`
	EventType EventType       `json:"event_type" db:"event_type"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	Sent      bool            `json:"sent" db:"sent"`
}

// NewOutBoxMessage marshals the payload up front so a malformed event
// fails inside the producing transaction, not in the relay.
func NewOutBoxMessage(eventType EventType, payload any) (OutBoxMessage, error) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return OutBoxMessage{}, err
	}

	return OutBoxMessage{
		EventType: eventType,
		Payload:   bytes,
	}, nil
}
