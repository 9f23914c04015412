package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// identityClaims are consulted in order
var identityClaims = []string{"userId", "id", "sub"}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// UserIDFromToken decodes the second dot-delimited segment of token as a JSON
// claims object and returns the first identity claim present. The signature
// is not verified; the result is informational only.
func UserIDFromToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return "", ErrNoClaims
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoClaims, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoClaims, err)
	}

	for _, name := range identityClaims {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
	}
	return "", ErrNoIdentityClaim
}
