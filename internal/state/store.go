package state

import (
	"sync"

	"github.com/sirupsen/logrus"

	"pageform/internal/domain"
)

// Observer is invoked after every update with the new record and its revision.
type Observer func(profile domain.Profile, revision uint64)

// Store holds the single live Profile shared by every page.
//
// Writers are serialized and observers run synchronously before Update
// returns, so a Read issued after Update returns always sees the new value.
// Observers may Read, Subscribe and unsubscribe, but must not Update.
type Store struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	profile   domain.Profile
	revision  uint64
	observers []subscription
	nextID    uint64

	logger *logrus.Entry
}

type subscription struct {
	id uint64
	fn Observer
}

func NewStore(logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		logger: logger.WithField("component", "state"),
	}
}

// Read returns a snapshot of the current record.
func (s *Store) Read() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Snapshot returns the current record together with its revision.
func (s *Store) Snapshot() (domain.Profile, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone(), s.revision
}

// Update replaces the record with fn applied to the previous one and
// notifies observers.
func (s *Store) Update(fn func(prev domain.Profile) domain.Profile) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := fn(s.Read()).Clone()

	s.mu.Lock()
	s.profile = next
	s.revision++
	revision := s.revision
	observers := s.observers
	s.mu.Unlock()

	s.logger.WithField("revision", revision).Debug("profile updated")

	for _, o := range observers {
		o.fn(next.Clone(), revision)
	}
}

// Merge applies a partial update. Fields absent from patch are kept.
func (s *Store) Merge(patch domain.Profile) {
	s.Update(func(prev domain.Profile) domain.Profile {
		return prev.Merge(patch)
	})
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	observers := make([]subscription, len(s.observers), len(s.observers)+1)
	copy(observers, s.observers)
	s.observers = append(observers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	observers := make([]subscription, 0, len(s.observers))
	for _, o := range s.observers {
		if o.id != id {
			observers = append(observers, o)
		}
	}
	s.observers = observers
}

// Watch adapts Subscribe to a channel for consumers running on their own
// goroutine. The channel holds one pending value and a newer update replaces
// an unread one, so Update never blocks on a slow reader.
func (s *Store) Watch() (<-chan domain.Profile, func()) {
	ch := make(chan domain.Profile, 1)
	cancel := s.Subscribe(func(profile domain.Profile, _ uint64) {
		select {
		case ch <- profile:
			return
		default:
		}
		// writers are serialized, so after draining the slot is ours
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- profile:
		default:
		}
	})
	return ch, cancel
}
