package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultCapacity is the number of entries a table keeps
	DefaultCapacity = 10
	// MaxNameLength is the longest accepted player name, in characters
	MaxNameLength = 20
)

var (
	ErrInvalidName  = errors.New("invalid player name")
	ErrInvalidScore = errors.New("invalid score")
)

// Entry is one row of the leaderboard
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// same reports whether two entries describe the same submission
func (e Entry) same(other Entry) bool {
	return e.Name == other.Name && e.Score == other.Score && e.Date.Equal(other.Date)
}

// Backend persists the table
type Backend interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Store is a bounded, descending high-score table. It is safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	capacity int
	entries  []Entry
	now      func() time.Time
}

// NewStore loads the table from backend. Loaded entries are re-sorted and
// truncated so a hand-edited file cannot break the ordering.
func NewStore(backend Backend, capacity int) (*Store, error) {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	entries, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}

	return &Store{
		backend:  backend,
		capacity: capacity,
		entries:  entries,
		now:      time.Now,
	}, nil
}

// ValidateName trims name and checks its length
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if n > MaxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters, got %d", ErrInvalidName, MaxNameLength, n)
	}
	return name, nil
}

// Submit offers an entry to the table. The entry is placed after every
// existing entry with an equal or higher score, then the table is cut back to
// capacity. It returns the resulting table and whether the entry made it in.
// The backend is written only when the table changed.
func (s *Store) Submit(entry Entry) ([]Entry, bool, error) {
	name, err := ValidateName(entry.Name)
	if err != nil {
		return nil, false, err
	}
	if entry.Score < 0 {
		return nil, false, fmt.Errorf("%w: score must not be negative, got %d", ErrInvalidScore, entry.Score)
	}
	entry.Name = name

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Date.IsZero() {
		entry.Date = s.now()
	}

	for _, existing := range s.entries {
		if existing.same(entry) {
			return s.snapshot(), false, nil
		}
	}

	pos := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Score < entry.Score
	})
	if pos >= s.capacity {
		return s.snapshot(), false, nil
	}

	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, s.entries[:pos]...)
	next = append(next, entry)
	next = append(next, s.entries[pos:]...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}

	if err := s.backend.Save(next); err != nil {
		return s.snapshot(), false, fmt.Errorf("failed to save leaderboard: %w", err)
	}
	s.entries = next

	return s.snapshot(), true, nil
}

// Query returns a copy of the table, highest score first
func (s *Store) Query() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Top returns at most n entries; n <= 0 returns the whole table
func (s *Store) Top(n int) []Entry {
	entries := s.Query()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Qualifies reports whether score would enter the table
func (s *Store) Qualifies(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= 0 {
		return false
	}
	if len(s.entries) < s.capacity {
		return true
	}
	return score > s.entries[len(s.entries)-1].Score
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Capacity returns the maximum number of entries
func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
