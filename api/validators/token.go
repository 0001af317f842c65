package validators

import (
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid auth token")

// BearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme is optional and matched case-insensitively.
func BearerToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if scheme, rest, found := strings.Cut(token, " "); found && strings.EqualFold(scheme, "bearer") {
		token = strings.TrimSpace(rest)
	} else if strings.EqualFold(token, "bearer") {
		return "", ErrInvalidToken
	}
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
