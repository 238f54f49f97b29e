package storage

import "context"

// ScoredMember is one entry of a scored collection, as returned by
// RangeScoredDesc.
type ScoredMember struct {
	Member string
	Score  float64
}

// KeyValue is the store surface the registry and ledger share. It is
// interface-driven so unit tests run against the in-memory implementation and
// production runs against Redis without rewiring business code.
//
// Contract notes:
//   - Get returns ErrNotFound for absent keys; callers must not treat that as
//     a transport failure.
//   - SetIfAbsent is atomic. It is the only write primitive the registry may
//     use for event records, since event creation is check-then-set racy
//     otherwise.
//   - UpsertScored overwrites the member's previous score (last-write-wins).
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
	AddToSet(ctx context.Context, key, member string) error
	ListSet(ctx context.Context, key string) ([]string, error)
	UpsertScored(ctx context.Context, key, member string, score float64) error
	RangeScoredDesc(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error)
}
