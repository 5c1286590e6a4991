package organization

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/orgkey"
	"github.com/dmitrymomot/onboarding/pkg/slug"
	"github.com/dmitrymomot/onboarding/pkg/validator"
)

// MaxNameLength bounds the display name in bytes.
const MaxNameLength = 255

// Translation keys for create validation.
const (
	MessageNameRequired = "onboarding.create_organization.name.required"
	MessageNameTooLong  = "onboarding.create_organization.name.too_long"
)

// Service answers availability lookups and creates organizations.
type Service struct {
	storage Storage
	cache   Cache
	logger  *slog.Logger
	policy  *bluemonday.Policy
	now     func() time.Time
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		cache:   NoOpCache{},
		logger:  logger.Discard(),
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the organization using key, consulting the cache first.
func (s *Service) Get(ctx context.Context, key string) (*Organization, error) {
	if org, ok := s.cache.Get(ctx, key); ok {
		return org, nil
	}

	org, err := s.storage.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, org); err != nil {
		s.logger.WarnContext(ctx, "failed to cache organization",
			logger.Component("organization"),
			logger.OrgKey(key),
			logger.Error(err),
		)
	}
	return org, nil
}

// KeyExists reports whether an organization already uses key.
// It satisfies orgkey.Lookup.
func (s *Service) KeyExists(ctx context.Context, key string) (bool, error) {
	return KeyExists(ctx, providerFunc(s.Get), key)
}

// CreateParams is the raw form input for Create.
type CreateParams struct {
	Name string
	Key  string
}

// Create validates p and stores a new organization.
//
// Invalid input yields validator.ValidationErrors with fields "name" and
// "key". A taken key yields an error matching both ErrKeyTaken and
// validator.ErrValidationFailed. Unlike the interactive field, a failing
// availability lookup aborts the creation.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Organization, error) {
	name := strings.TrimSpace(s.policy.Sanitize(p.Name))

	var verrs validator.ValidationErrors
	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, MaxNameLength),
	); err != nil {
		for _, ve := range validator.ExtractValidationErrors(err) {
			ve.TranslationKey = MessageNameRequired
			if ve.TranslationValues["max"] != nil {
				ve.TranslationKey = MessageNameTooLong
			}
			verrs.Add(ve)
		}
	}
	if err := orgkey.ValidateFormat(p.Key); err != nil {
		verrs.Add(keyError("invalid organization key format", orgkey.MessageInvalidFormat))
	}
	if !verrs.IsEmpty() {
		return nil, verrs
	}

	exists, err := s.KeyExists(ctx, p.Key)
	if err != nil {
		return nil, errors.Join(ErrCreateFailed, err)
	}
	if exists {
		return nil, takenError()
	}

	org := &Organization{
		ID:        uuid.New(),
		Key:       p.Key,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.storage.Create(ctx, org); err != nil {
		if errors.Is(err, ErrKeyTaken) {
			return nil, takenError()
		}
		return nil, errors.Join(ErrCreateFailed, err)
	}

	if err := s.cache.Set(ctx, org); err != nil {
		s.logger.WarnContext(ctx, "failed to cache organization",
			logger.Component("organization"),
			logger.OrgKey(org.Key),
			logger.Error(err),
		)
	}

	s.logger.InfoContext(ctx, "organization created",
		logger.Component("organization"),
		logger.Event("organization.created"),
		logger.OrgID(org.ID),
		logger.OrgKey(org.Key),
	)
	return org, nil
}

// suggestAttempts bounds the suffixed candidates tried by SuggestKey.
const suggestAttempts = 3

// SuggestKey derives a free key from an organization name.
func (s *Service) SuggestKey(ctx context.Context, name string) (string, error) {
	return SuggestKey(ctx, s, name)
}

// SuggestKey derives a free key from an organization name: the plain slug
// first, then slugs with a random suffix. Lookup failures are returned, so a
// suggestion is always known to be free at the time of the call.
func SuggestKey(ctx context.Context, lookup orgkey.Lookup, name string) (string, error) {
	opts := []slug.Option{slug.Replace("&", " and ", "@", " at "), slug.MaxLength(orgkey.MaxLength)}

	candidates := make([]string, 0, suggestAttempts+1)
	if base := slug.Make(name, opts...); base != "" {
		candidates = append(candidates, base)
	}
	for range suggestAttempts {
		candidates = append(candidates, slug.Make(name, append(opts, slug.WithSuffix(4))...))
	}

	for _, key := range candidates {
		if orgkey.ValidateFormat(key) != nil {
			continue
		}
		exists, err := lookup.KeyExists(ctx, key)
		if err != nil {
			return "", errors.Join(ErrLookupFailed, err)
		}
		if !exists {
			return key, nil
		}
	}
	return "", ErrNoSuggestion
}

func keyError(msg, translationKey string) validator.ValidationError {
	return validator.ValidationError{
		Field:          "key",
		Message:        msg,
		TranslationKey: translationKey,
	}
}

func takenError() error {
	return errors.Join(ErrKeyTaken, validator.ValidationErrors{
		keyError("organization key is already taken", orgkey.MessageTaken),
	})
}

type providerFunc func(ctx context.Context, key string) (*Organization, error)

func (f providerFunc) GetByKey(ctx context.Context, key string) (*Organization, error) {
	return f(ctx, key)
}
