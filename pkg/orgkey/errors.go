package orgkey

import "errors"

var (
	// ErrInvalidFormat is returned when a key is too long or does not match the key pattern.
	ErrInvalidFormat = errors.New("orgkey: invalid organization key format")

	// ErrKeyTaken is returned by Check when an organization already uses the key.
	ErrKeyTaken = errors.New("orgkey: organization key is already taken")
)
