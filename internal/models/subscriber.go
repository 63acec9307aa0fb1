package models

import "time"

// Subscriber is a newsletter subscription record. The whole collection is
// persisted as one JSON document and rewritten wholesale on every change.
type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	// Confirmed is always true on insert; there is no confirmation flow.
	Confirmed bool `json:"confirmed"`
}
