package pkg

import "github.com/google/uuid"

// GenerateGameID returns a new unique game id.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateNewSessionID returns a new unique session id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
