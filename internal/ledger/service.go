// Package ledger records claimed expense amounts per event. Entries are
// keyed by signer address with last-write-wins semantics: resubmitting
// replaces the previous amount, it never accumulates.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"events-tracker/internal/domain"
	"events-tracker/internal/registry"
	"events-tracker/internal/storage"
	dErrors "events-tracker/pkg/domain-errors"
)

const expenseKeyPrefix = "events-tracker-expenses-"

var (
	ErrEventNotFound = dErrors.New(dErrors.CodeNotFound, "Event does not exist")
	ErrInvalidAmount = dErrors.New(dErrors.CodeValidation, "Amount must be a positive integer")
)

// ExpenseKey returns the scored-collection key for an event's ledger.
func ExpenseKey(slug string) string { return expenseKeyPrefix + slug }

// Service implements the expense ledger on the shared store.
type Service struct {
	store    storage.KeyValue
	registry *registry.Service
	limit    int64
}

// New builds a ledger. limit caps how many entries List returns in one call;
// listings beyond it should paginate rather than silently truncate, but no
// event has come near the cap so far.
func New(store storage.KeyValue, reg *registry.Service, limit int64) *Service {
	if limit <= 0 {
		limit = 10000
	}
	return &Service{store: store, registry: reg, limit: limit}
}

// Submit upserts addr's claimed amount for the event. A prior entry for the
// same address is overwritten. Concurrent submissions by the same address
// race on which write lands last; that is accepted, there are no merge
// semantics.
func (s *Service) Submit(ctx context.Context, slug string, addr common.Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	exists, err := s.registry.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEventNotFound
	}
	if err := s.store.UpsertScored(ctx, ExpenseKey(slug), addr.Hex(), float64(amount)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record expense")
	}
	return nil
}

// List returns the event's entries ordered by amount descending. Ties keep
// the store's native order; callers must not assume a secondary sort key.
func (s *Service) List(ctx context.Context, slug string) ([]domain.ExpenseEntry, error) {
	exists, err := s.registry.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	scored, err := s.store.RangeScoredDesc(ctx, ExpenseKey(slug), 0, s.limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list expenses")
	}

	entries := make([]domain.ExpenseEntry, 0, len(scored))
	for _, m := range scored {
		if !common.IsHexAddress(m.Member) {
			continue
		}
		entries = append(entries, domain.ExpenseEntry{
			Address: common.HexToAddress(m.Member),
			Amount:  uint64(m.Score),
		})
	}
	return entries, nil
}
