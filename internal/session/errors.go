package session

import "errors"

var (
	// ErrCorruptStorage indicates a storage file that cannot be decoded
	ErrCorruptStorage = errors.New("session storage is corrupt")

	// ErrNoClaims indicates a token without a decodable claims segment
	ErrNoClaims = errors.New("token has no claims segment")

	// ErrNoIdentityClaim indicates claims without userId, id or sub
	ErrNoIdentityClaim = errors.New("token claims carry no user identity")
)
