// Package launch composes and runs the client process: classpath
// assembly, placeholder substitution over manifest launch arguments,
// and the legacy argument fallback for old version documents.
package launch

import (
	"strings"

	"github.com/google/uuid"
)

// Session carries the identity the client is launched with.
type Session struct {
	Username    string
	UUID        string
	AccessToken string
	UserType    string
}

// NewOfflineSession creates a session with a random identity and no
// credentials. The access token is the literal "0" the client treats
// as unauthenticated.
func NewOfflineSession(username string) Session {
	return Session{
		Username:    username,
		UUID:        strings.ReplaceAll(uuid.New().String(), "-", ""),
		AccessToken: "0",
		UserType:    "legacy",
	}
}
