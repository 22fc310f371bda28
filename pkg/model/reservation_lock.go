package model

import "time"

// ReservationLock is an advisory lock scoped to one room and day. Its ID is
// deterministic for the slot, so a unique-key insert acts as mutual exclusion
// around the conflict-check-then-write sequence. ExpiresAt lets a TTL index
// reap locks left behind by crashed requests.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
