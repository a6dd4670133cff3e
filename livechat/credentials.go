package livechat

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const minTokenLength = 20

var knownRegions = map[string]bool{
	"dal": true,
	"fra": true,
}

type Credentials struct {
	AccountID string
	Token     string
}

// ValidateCredentials is a format check only; the server is the
// authority on whether the token actually works.
func ValidateCredentials(accountID, token string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidCredentials)
	}
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidCredentials)
	}
	if len(token) < minTokenLength {
		return fmt.Errorf("%w: token must be at least %d characters", ErrInvalidCredentials, minTokenLength)
	}
	return nil
}

func (c Credentials) AuthorizationHeader() string {
	raw := c.AccountID + ":" + c.Token
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// Region returns the routing hint carried as a token prefix, e.g. "fra:...".
func (c Credentials) Region() (string, bool) {
	prefix, _, found := strings.Cut(c.Token, ":")
	if !found || !knownRegions[prefix] {
		return "", false
	}
	return prefix, true
}
