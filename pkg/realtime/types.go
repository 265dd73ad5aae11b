package realtime

import (
	"encoding/json"
	"time"
)

// PostgresChange describes one row-change binding requested on join.
type PostgresChange struct {
	Event  string `json:"event"` // "*", "INSERT", "UPDATE", "DELETE"
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"` // e.g. "list_id=eq.<uuid>"
}

// Event is one decoded row-level change received on a subscription.
type Event struct {
	Table      string
	Type       string // INSERT, UPDATE, DELETE
	CommitTime time.Time
	Record     json.RawMessage
	OldRecord  json.RawMessage
}

// phoenixMessage is the channel-protocol envelope used by the realtime
// endpoint.
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref,omitempty"`
}

// joinPayload is sent with phx_join to bind postgres_changes.
type joinPayload struct {
	Config      joinConfig `json:"config"`
	AccessToken string     `json:"access_token,omitempty"`
}

type joinConfig struct {
	PostgresChanges []PostgresChange `json:"postgres_changes"`
}

// changePayload is the payload of a postgres_changes event.
type changePayload struct {
	Data struct {
		Type            string          `json:"type"`
		Schema          string          `json:"schema"`
		Table           string          `json:"table"`
		CommitTimestamp string          `json:"commit_timestamp"`
		Record          json.RawMessage `json:"record"`
		OldRecord       json.RawMessage `json:"old_record"`
	} `json:"data"`
}

// replyPayload is the payload of a phx_reply event.
type replyPayload struct {
	Status string `json:"status"`
}
