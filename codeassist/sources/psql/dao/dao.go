package dao

import (
	"time"

	"github.com/google/uuid"
)

// IDs and timestamps are minted here, never by callers.

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
