package organization

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

// Organization is a registered organization, addressed by its unique key.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound = errors.New("organization: not found")

	// ErrKeyTaken is orgkey.ErrKeyTaken, so callers of either package can match it.
	ErrKeyTaken = orgkey.ErrKeyTaken

	ErrCreateFailed     = errors.New("organization: failed to create")
	ErrLookupFailed     = errors.New("organization: lookup failed")
	ErrUnexpectedStatus = errors.New("organization: unexpected response status")
	ErrNoSuggestion     = errors.New("organization: no free key found")
)

// Provider finds organizations by key. Implementations return ErrNotFound
// when no organization uses the key.
type Provider interface {
	GetByKey(ctx context.Context, key string) (*Organization, error)
}

// Storage persists organizations. Create returns ErrKeyTaken when the key is
// already in use.
type Storage interface {
	Provider
	Create(ctx context.Context, org *Organization) error
}

// KeyExists adapts a Provider to the availability question asked by the key field.
func KeyExists(ctx context.Context, p Provider, key string) (bool, error) {
	_, err := p.GetByKey(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
