package task

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random 16-hex-character identifier. Collisions are not a
// practical concern at personal-task-collection scale.
func NewID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("task: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
