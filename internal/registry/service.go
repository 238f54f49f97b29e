// Package registry creates and resolves events. An event is a display name
// keyed by its slug; one slug maps to at most one event, ever.
package registry

import (
	"context"
	"errors"

	"events-tracker/internal/domain"
	"events-tracker/internal/storage"
	dErrors "events-tracker/pkg/domain-errors"
)

// Key scheme shared with the ledger; kept compatible with the data written by
// earlier deployments of the tracker.
const (
	eventKeyPrefix = "events-tracker-events-"
	eventIndexKey  = "events-tracker-events"
)

var (
	ErrInvalidName   = dErrors.New(dErrors.CodeValidation, "Invalid event name")
	ErrAlreadyExists = dErrors.New(dErrors.CodeConflict, "Event already exists")
	ErrNotFound      = dErrors.New(dErrors.CodeNotFound, "No Event")
)

// EventKey returns the store key holding the display name for slug.
func EventKey(slug string) string { return eventKeyPrefix + slug }

// Service implements event creation and lookup on the shared store.
type Service struct {
	store storage.KeyValue
}

// New builds a registry over the given store.
func New(store storage.KeyValue) *Service {
	return &Service{store: store}
}

// Create registers an event under the slug derived from name. The write is a
// single set-if-absent so two concurrent creations of the same slug cannot
// both succeed. The index add that follows is not atomic with it; a crash in
// between leaves a resolvable event missing from the admin listing, which an
// operator can repair by re-adding the name to the index set.
func (s *Service) Create(ctx context.Context, name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", ErrInvalidName
	}

	created, err := s.store.SetIfAbsent(ctx, EventKey(slug), name)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create event")
	}
	if !created {
		return "", ErrAlreadyExists
	}

	if err := s.store.AddToSet(ctx, eventIndexKey, name); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to index event")
	}
	return slug, nil
}

// Get resolves a slug to its event. Public read path; no authorization.
func (s *Service) Get(ctx context.Context, slug string) (domain.Event, error) {
	name, err := s.store.Get(ctx, EventKey(slug))
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Event{}, ErrNotFound
	}
	if err != nil {
		return domain.Event{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
	}
	return domain.Event{Name: name, Slug: slug}, nil
}

// Exists reports whether an event is registered under slug.
func (s *Service) Exists(ctx context.Context, slug string) (bool, error) {
	_, err := s.Get(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the display names of all registered events. The index is a
// set, so order is not guaranteed.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.store.ListSet(ctx, eventIndexKey)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events")
	}
	return names, nil
}
