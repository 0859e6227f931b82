package progress

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/logger"
)

var (
	// ErrPersist wraps any failure to write a record. The returned record is
	// still valid for the rest of the session.
	ErrPersist = errors.New("failed to persist progress")
	// ErrAlreadyPlayed is returned by Commit when today already has an outcome.
	ErrAlreadyPlayed = errors.New("today's challenge already played")
)

// Store reads and writes one challenge's record under a fixed key.
type Store[D any] struct {
	kv    kv.Store
	key   string
	codec Codec[D]
}

// NewStore returns a store for key using codec.
func NewStore[D any](store kv.Store, key string, codec Codec[D]) *Store[D] {
	return &Store[D]{kv: store, key: key, codec: codec}
}

// NewQuizStore returns the quiz progress store.
func NewQuizStore(store kv.Store) *Store[QuizDetail] {
	return NewStore[QuizDetail](store, constants.QuizStatsKey, QuizCodec{})
}

// NewMemoryStore returns the memory game progress store.
func NewMemoryStore(store kv.Store) *Store[MemoryDetail] {
	return NewStore[MemoryDetail](store, constants.MemoryStatsKey, MemoryCodec{})
}

// Key returns the storage key.
func (s *Store[D]) Key() string { return s.key }

// Load returns the stored record. Missing, unreadable or corrupt data yields
// a zero record; the problem is logged, never returned.
func (s *Store[D]) Load() Record[D] {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		logger.Warn("Progress storage unavailable, starting fresh", "key", s.key, "error", err)
		return Record[D]{}
	}
	if !ok || raw == "" {
		return Record[D]{}
	}

	rec, err := s.codec.Decode([]byte(raw))
	if err != nil {
		logger.Warn("Discarding corrupt progress record", "key", s.key, "error", err)
		return Record[D]{}
	}
	return rec
}

// Open loads the record and rolls it over to today.
func (s *Store[D]) Open(today datekey.DateKey) Record[D] {
	return s.Load().Reconcile(today)
}

// Commit applies outcome to rec and persists it. The updated record is
// returned even when the write fails, in which case the error wraps ErrPersist.
func (s *Store[D]) Commit(rec Record[D], today datekey.DateKey, outcome Outcome, detail D) (Record[D], error) {
	updated, ok := rec.Commit(today, outcome, detail)
	if !ok {
		return updated, ErrAlreadyPlayed
	}

	if err := s.Save(updated); err != nil {
		logger.Warn("Progress not saved, continuing in memory", "key", s.key, "error", err)
		return updated, err
	}
	return updated, nil
}

// Save overwrites the stored record.
func (s *Store[D]) Save(rec Record[D]) error {
	data, err := s.codec.Encode(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Reset removes the stored record.
func (s *Store[D]) Reset() error {
	if err := s.kv.Delete(s.key); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
