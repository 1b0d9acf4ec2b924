package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pin-vault/models"
)

// Session describes an unlocked vault. The master key is not part of it.
type Session struct {
	ID        uuid.UUID
	Username  string
	Method    models.UnlockMethod
	StartedAt time.Time
}

// activeSession is the service-owned session state, key included.
type activeSession struct {
	Session
	key models.MasterKey
}

func (s *activeSession) close() {
	s.key.Zero()
	s.key = nil
}

// newSessionID prefers time-ordered v7 ids and falls back to random v4.
func newSessionID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v7
}
