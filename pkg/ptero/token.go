package ptero

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/ptero/internal/constants"
)

// TokenPrefixes lists the API key prefixes the panel issues.
var TokenPrefixes = []string{constants.ClientTokenPrefix, constants.ApplicationTokenPrefix}

// ValidateToken checks that token is a non-empty panel API key.
func ValidateToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return nil
		}
	}

	return ErrInvalidTokenPrefix
}

// ValidateMethod normalizes method to upper case and checks it is one the
// panel API accepts.
func ValidateMethod(method string) (string, error) {
	upper := strings.ToUpper(method)

	switch upper {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
		return upper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
}
