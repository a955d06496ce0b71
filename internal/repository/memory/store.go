// Package memory keeps every repository in process memory. It backs the
// DB_DRIVER=memory development mode and the use case tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/google/uuid"
)

type pairKey [2]string

type txKey struct{}

type tables struct {
	profiles     map[string]*domain.Profile
	dealBreakers map[string]*domain.DealBreakers
	swipes       map[pairKey]*domain.Swipe
	matches      map[string]*domain.Match
	messages     []*domain.Message
	limits       map[pairKey]*domain.MessageLimit
	venues       map[string]*domain.Venue
	suggestions  map[string]*domain.DateSuggestion
	blocks       map[pairKey]*domain.Block
	reports      []*domain.Report
}

// Store is a goroutine-safe set of tables. Transactions are serialized and
// rolled back by restoring a snapshot taken when they started. Writes made
// outside a transaction wait for the running one to finish so a rollback
// never discards them.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	t    tables
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		t: tables{
			profiles:     map[string]*domain.Profile{},
			dealBreakers: map[string]*domain.DealBreakers{},
			swipes:       map[pairKey]*domain.Swipe{},
			matches:      map[string]*domain.Match{},
			limits:       map[pairKey]*domain.MessageLimit{},
			venues:       map[string]*domain.Venue{},
			suggestions:  map[string]*domain.DateSuggestion{},
			blocks:       map[pairKey]*domain.Block{},
		},
		now: time.Now,
	}
}

// SetClock replaces the time source used for created_at style columns.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// lockWrite locks the tables for a single write and returns the unlock func.
// A write outside a transaction also holds txMu, so it cannot be captured by
// a running transaction's snapshot and undone on rollback.
func (s *Store) lockWrite(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func newID() string {
	return uuid.NewString()
}

func (t tables) clone() tables {
	c := tables{
		profiles:     make(map[string]*domain.Profile, len(t.profiles)),
		dealBreakers: make(map[string]*domain.DealBreakers, len(t.dealBreakers)),
		swipes:       maps.Clone(t.swipes),
		matches:      make(map[string]*domain.Match, len(t.matches)),
		limits:       make(map[pairKey]*domain.MessageLimit, len(t.limits)),
		venues:       make(map[string]*domain.Venue, len(t.venues)),
		suggestions:  make(map[string]*domain.DateSuggestion, len(t.suggestions)),
		blocks:       maps.Clone(t.blocks),
		messages:     make([]*domain.Message, 0, len(t.messages)),
		reports:      slices.Clone(t.reports),
	}
	for k, v := range t.profiles {
		c.profiles[k] = cloneProfile(v)
	}
	for k, v := range t.dealBreakers {
		c.dealBreakers[k] = cloneDealBreakers(v)
	}
	for k, v := range t.matches {
		m := *v
		c.matches[k] = &m
	}
	for k, v := range t.limits {
		l := *v
		c.limits[k] = &l
	}
	for k, v := range t.venues {
		c.venues[k] = cloneVenue(v)
	}
	for k, v := range t.suggestions {
		ds := *v
		c.suggestions[k] = &ds
	}
	for _, m := range t.messages {
		msg := *m
		c.messages = append(c.messages, &msg)
	}
	return c
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.LookingFor = slices.Clone(p.LookingFor)
	c.PhotoURLs = slices.Clone(p.PhotoURLs)
	return &c
}

func cloneDealBreakers(d *domain.DealBreakers) *domain.DealBreakers {
	c := *d
	c.AcceptableEthnicities = slices.Clone(d.AcceptableEthnicities)
	c.AcceptableReligions = slices.Clone(d.AcceptableReligions)
	c.AcceptableOffspring = slices.Clone(d.AcceptableOffspring)
	c.AcceptableSmoker = slices.Clone(d.AcceptableSmoker)
	c.AcceptableAlcohol = slices.Clone(d.AcceptableAlcohol)
	c.AcceptableDrugs = slices.Clone(d.AcceptableDrugs)
	c.AcceptableDiets = slices.Clone(d.AcceptableDiets)
	c.AcceptableIncome = slices.Clone(d.AcceptableIncome)
	return &c
}

func cloneVenue(v *domain.Venue) *domain.Venue {
	c := *v
	c.PhotoURLs = slices.Clone(v.PhotoURLs)
	return &c
}

func (s *Store) blockedLocked(a, b string) bool {
	_, ab := s.t.blocks[pairKey{a, b}]
	_, ba := s.t.blocks[pairKey{b, a}]
	return ab || ba
}
