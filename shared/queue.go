package shared

import (
	"context"
	"encoding/json"
	"time"
)

// Job is one unit of background work as seen by a handler. Payload is the
// raw JSON the enqueuer supplied.
type Job struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload"`
	Attempt     int             `json:"attempt"`
	MaxAttempts int             `json:"max_attempts"`
	EnqueuedAt  time.Time       `json:"enqueued_at"`
}

// DecodePayload unmarshals the job payload into dst.
func (j *Job) DecodePayload(dst interface{}) error {
	return jsonAPI.Unmarshal(j.Payload, dst)
}

type JobHandler func(ctx context.Context, job *Job) error

// JobDefinition declares one background job type. Name is unique process-wide;
// multiple definitions may share a Queue. Registration happens once at startup
// and there is no unregistration.
type JobDefinition struct {
	Name        string
	Queue       string
	Concurrency int
	MaxAttempts int
	RetryDelay  time.Duration
	Handler     JobHandler
}
