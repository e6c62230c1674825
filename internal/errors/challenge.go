package errors

import (
	"fmt"
	"strings"
)

// ChallengeInvalidToken is the RFC 6750 Section 3.1 error code sent for any
// Authorization header that is present but not an accepted bearer token.
const ChallengeInvalidToken = "invalid_token"

// Challenge describes the WWW-Authenticate header sent with a 401 response.
type Challenge struct {
	// Realm is the protection space advertised to the client.
	Realm string

	// ErrorCode is the optional RFC 6750 error code. It is omitted when the
	// request carried no credentials at all.
	ErrorCode string
}

// String formats the challenge as a WWW-Authenticate header value.
//
// Example output:
//
//	Bearer realm="greeter", error="invalid_token"
func (c Challenge) String() string {
	var parts []string

	if c.Realm != "" {
		parts = append(parts, fmt.Sprintf(`realm="%s"`, escapeQuotes(c.Realm)))
	}
	if c.ErrorCode != "" {
		parts = append(parts, fmt.Sprintf(`error="%s"`, escapeQuotes(c.ErrorCode)))
	}

	if len(parts) == 0 {
		return "Bearer"
	}
	return "Bearer " + strings.Join(parts, ", ")
}

// escapeQuotes escapes double quotes in strings for use in header values.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
