package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionToken mints an opaque 128-bit session token rendered
// as 32 hex characters. Uniqueness is all that matters here; the token
// is a correlation key, not a credential.
func GenerateSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
