package model

import (
	"encoding/json"
	"time"
)

// ChangeEntity identifies which table a change event belongs to.
type ChangeEntity string

const (
	EntityList  ChangeEntity = "shopping_lists"
	EntityItem  ChangeEntity = "list_items"
	EntityShare ChangeEntity = "list_shares"
)

// ChangeOp is the row-level operation carried by a change event.
type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// ChangeEvent is one row-level change from the gateway's realtime
// stream. Record holds the new row (insert/update), OldRecord the
// previous row (update/delete). CommitTime is the gateway's write
// timestamp and defines cross-client ordering.
type ChangeEvent struct {
	Entity     ChangeEntity
	Op         ChangeOp
	Record     json.RawMessage
	OldRecord  json.RawMessage
	CommitTime time.Time
}
