package domain

import "time"

// Participant is a client currently considered present in the room.
// LastStatus carries the millisecond timestamp of the last liveness
// event (registration or ping); the sweeper evicts participants whose
// LastStatus falls outside the liveness window.
type Participant struct {
	Name       string `bson:"name" json:"name"`
	LastStatus int64  `bson:"lastStatus" json:"lastStatus"`
}

func NewParticipant(name string, now time.Time) *Participant {
	return &Participant{
		Name:       name,
		LastStatus: now.UnixMilli(),
	}
}
