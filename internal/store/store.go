// Package store holds computed receipt scores in memory for the life of the
// process. Nothing is persisted; a restart forgets every receipt.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/msundar/receipt-processor/internal/fingerprint"
	"github.com/msundar/receipt-processor/internal/points"
	"github.com/msundar/receipt-processor/internal/types"
)

// ErrDuplicateReceipt indicates the same receipt content was already
// submitted. Only returned when the configured ruleset rejects duplicates.
var ErrDuplicateReceipt = errors.New("duplicate receipt")

// ErrReceiptNotFound indicates an id that was never issued by this process.
var ErrReceiptNotFound = errors.New("receipt not found")

// Store owns the id-to-score mapping and the set of seen content
// fingerprints. All access is serialized through one mutex; scoring and
// fingerprinting are pure and run outside the lock.
type Store struct {
	ruleset points.Ruleset

	mu     sync.Mutex
	scores map[string]int
	seen   map[string]struct{}
}

// New returns an empty store scoring with the given ruleset.
func New(ruleset points.Ruleset) *Store {
	return &Store{
		ruleset: ruleset,
		scores:  make(map[string]int),
		seen:    make(map[string]struct{}),
	}
}

// Submit scores a validated receipt, records the result under a fresh opaque
// id and returns that id. Under the extended ruleset the receipt's content
// fingerprint is checked and recorded atomically with the insert, so two
// concurrent submissions of identical content can never both succeed.
func (s *Store) Submit(receipt *types.Receipt) (string, error) {
	fp, err := fingerprint.Hash(receipt.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("fingerprint receipt: %w", err)
	}
	score := points.Calculate(receipt, s.ruleset)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ruleset.RejectDuplicates() {
		if _, dup := s.seen[fp]; dup {
			return "", ErrDuplicateReceipt
		}
	}

	id := uuid.NewString()
	s.scores[id] = score
	if s.ruleset.RejectDuplicates() {
		s.seen[fp] = struct{}{}
	}
	return id, nil
}

// Lookup returns the score recorded for id.
func (s *Store) Lookup(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, ok := s.scores[id]
	if !ok {
		return 0, ErrReceiptNotFound
	}
	return score, nil
}

// Size returns the number of scored receipts held in memory.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scores)
}
