// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ActivityQueueName is the broker queue carrying resource activity events.
const ActivityQueueName = "resource.activity"

// ResourceEvent is published after a resource is created, updated or deleted.
// It contains enough information for downstream consumers to build an audit
// trail without querying the primary database.
type ResourceEvent struct {
	EventID    string `json:"event_id"`    // unique id of this event
	Action     string `json:"action"`      // created | updated | deleted
	Resource   string `json:"resource"`    // outlet | good | service | account
	ResourceID uint64 `json:"resource_id"` // id of the affected record
	UserID     uint64 `json:"user_id"`     // owner who performed the action
	OccurredAt string `json:"occurred_at"` // RFC3339 UTC timestamp
}
