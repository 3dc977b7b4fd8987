package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindEntryRecorded = "entry_recorded"
	KindEntryDeleted  = "entry_deleted"
)

// EntryEventMessage is the lightweight ledger event put on the queue.
// It carries only the entry ID and the event kind; the mirror worker
// fetches the full entry from the database when it needs one.
type EntryEventMessage struct {
	Kind      string    `json:"kind"`
	EntryID   string    `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryRecordedMessage(entryID string) *EntryEventMessage {
	return &EntryEventMessage{
		Kind:      KindEntryRecorded,
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func NewEntryDeletedMessage(entryID string) *EntryEventMessage {
	return &EntryEventMessage{
		Kind:      KindEntryDeleted,
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func (m *EntryEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryEventMessageFromJSON(data []byte) (*EntryEventMessage, error) {
	var msg EntryEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
