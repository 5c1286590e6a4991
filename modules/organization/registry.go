package organization

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

var (
	ErrFieldNotFound = handler.NewHTTPError(http.StatusNotFound, "errors.field_not_found")
	ErrFieldExists   = handler.NewHTTPError(http.StatusConflict, "errors.field_exists")
	ErrInvalidField  = errors.Join(handler.ErrBadRequest, errors.New("organization: invalid field id"))
)

// Registry holds the key fields of open streams. A field is registered when
// its stream opens and removed when the stream ends.
type Registry struct {
	mu     sync.RWMutex
	fields map[uuid.UUID]*orgkey.Field
}

func NewRegistry() *Registry {
	return &Registry{fields: make(map[uuid.UUID]*orgkey.Field)}
}

// Add registers f under id. An id can be used by one stream at a time.
func (r *Registry) Add(id uuid.UUID, f *orgkey.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fields[id]; ok {
		return ErrFieldExists
	}
	r.fields[id] = f
	return nil
}

func (r *Registry) Get(id uuid.UUID) (*orgkey.Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fields[id]
	if !ok {
		return nil, ErrFieldNotFound
	}
	return f, nil
}

// Remove unregisters id if it still points at f.
func (r *Registry) Remove(id uuid.UUID, f *orgkey.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fields[id] == f {
		delete(r.fields, id)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}
