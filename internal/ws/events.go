package ws

import "time"

// Event is one message on the admin live feed. Reviewers keep the queue page
// open; pushing pipeline events saves them from polling.
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
