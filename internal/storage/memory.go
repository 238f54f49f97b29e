package storage

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory KeyValue used by unit tests and local development
// without Redis. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	strings map[string]string
	sets    map[string]map[string]struct{}
	scored  map[string][]scoredEntry
}

// scoredEntry keeps insertion order so ties keep a stable, store-native order.
type scoredEntry struct {
	member string
	score  float64
	seq    int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		strings: make(map[string]string),
		sets:    make(map[string]map[string]struct{}),
		scored:  make(map[string][]scoredEntry),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.strings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SetIfAbsent(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.strings[key]; ok {
		return false, nil
	}
	m.strings[key] = value
	return true, nil
}

func (m *Memory) AddToSet(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

func (m *Memory) ListSet(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

func (m *Memory) UpsertScored(_ context.Context, key, member string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.scored[key]
	for i := range entries {
		if entries[i].member == member {
			entries[i].score = score
			return nil
		}
	}
	seq := 0
	if n := len(entries); n > 0 {
		seq = entries[n-1].seq + 1
	}
	m.scored[key] = append(entries, scoredEntry{member: member, score: score, seq: seq})
	return nil
}

func (m *Memory) RangeScoredDesc(_ context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	m.mu.RLock()
	entries := make([]scoredEntry, len(m.scored[key]))
	copy(entries, m.scored[key])
	m.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].seq < entries[j].seq
	})

	if start < 0 {
		start = 0
	}
	if start >= int64(len(entries)) {
		return nil, nil
	}
	end := stop + 1
	if stop < 0 || end > int64(len(entries)) {
		end = int64(len(entries))
	}

	out := make([]ScoredMember, 0, end-start)
	for _, e := range entries[start:end] {
		out = append(out, ScoredMember{Member: e.member, Score: e.score})
	}
	return out, nil
}
