package models

import "time"

// LiveSessionStatus represents the state of a live websocket session.
type LiveSessionStatus string

const (
	LiveSessionOpen   LiveSessionStatus = "open"
	LiveSessionClosed LiveSessionStatus = "closed"
)

// LiveSession tracks one client's stream of compute requests. Only the
// newest sequence number is ever answered; older ones are counted as
// superseded.
type LiveSession struct {
	ID              string            `json:"id"`
	Status          LiveSessionStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastAccessed    time.Time         `json:"lastAccessed"`
	LatestSeq       int64             `json:"latestSeq"`
	LastComputedSeq int64             `json:"lastComputedSeq"`
	Computations    int               `json:"computations"`
	Superseded      int               `json:"superseded"`
}

// NewLiveSession creates an open LiveSession.
func NewLiveSession(id string) *LiveSession {
	now := time.Now()
	return &LiveSession{
		ID:           id,
		Status:       LiveSessionOpen,
		CreatedAt:    now,
		LastAccessed: now,
	}
}
