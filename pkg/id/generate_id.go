package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a random (v4) UUID in its canonical 36-char form. All stored
// entities use it.
func New() string { return uuid.NewString() }

// NewID32 is a v4 UUID rendered as 32 lowercase hex characters, the compact
// request id form clients may send.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
