package state

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"pageform/internal/domain"
)

func newTestStore() *Store {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStore(logger)
}

func TestStoreStartsEmpty(t *testing.T) {
	s := newTestStore()
	profile, revision := s.Snapshot()
	if !profile.IsEmpty() {
		t.Fatalf("initial profile = %+v, want empty", profile)
	}
	if revision != 0 {
		t.Fatalf("revision = %d, want 0", revision)
	}
}

func TestStoreMergeSequence(t *testing.T) {
	s := newTestStore()
	patches := []domain.Profile{
		{FirstName: domain.Text("Ada")},
		{LastName: domain.Text("Lovelace"), Age: domain.Text("35")},
		{Age: domain.Text("36")},
		{FirstName: domain.Text("")},
	}

	want := domain.Profile{}
	for _, patch := range patches {
		s.Merge(patch)
		want = want.Merge(patch)

		got := s.Read()
		if got.DisplayFirstName() != want.DisplayFirstName() ||
			got.DisplayLastName() != want.DisplayLastName() ||
			got.DisplayAge() != want.DisplayAge() {
			t.Fatalf("Read() = %+v, want %+v", got, want)
		}
	}

	got := s.Read()
	if got.FirstName == nil || *got.FirstName != "" {
		t.Fatalf("firstname = %v, want empty string", got.FirstName)
	}
	if got.DisplayLastName() != "Lovelace" || got.DisplayAge() != "36" {
		t.Fatalf("Read() = %q/%q, want Lovelace/36", got.DisplayLastName(), got.DisplayAge())
	}
	if _, revision := s.Snapshot(); revision != uint64(len(patches)) {
		t.Fatalf("revision = %d, want %d", revision, len(patches))
	}
}

func TestStorePartialUpdatesDoNotClear(t *testing.T) {
	s := newTestStore()
	s.Merge(domain.Profile{FirstName: domain.Text("A")})
	s.Merge(domain.Profile{LastName: domain.Text("B")})

	got := s.Read()
	if got.DisplayFirstName() != "A" || got.DisplayLastName() != "B" {
		t.Fatalf("Read() = %q %q, want A B", got.DisplayFirstName(), got.DisplayLastName())
	}
}

func TestStoreUpdateTransform(t *testing.T) {
	s := newTestStore()
	s.Merge(domain.Profile{FirstName: domain.Text("ada")})
	s.Update(func(prev domain.Profile) domain.Profile {
		prev.LastName = domain.Text(prev.DisplayFirstName() + "-suffix")
		return prev
	})

	got := s.Read()
	if got.DisplayLastName() != "ada-suffix" {
		t.Fatalf("lastname = %q, want %q", got.DisplayLastName(), "ada-suffix")
	}
	if got.DisplayFirstName() != "ada" {
		t.Fatalf("firstname = %q, want %q", got.DisplayFirstName(), "ada")
	}
}

func TestStoreReadReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.Merge(domain.Profile{FirstName: domain.Text("Ada")})

	snapshot := s.Read()
	*snapshot.FirstName = "mutated"

	if got := s.Read().DisplayFirstName(); got != "Ada" {
		t.Fatalf("firstname = %q, want %q", got, "Ada")
	}
}

func TestStoreObserversRunSynchronouslyInOrder(t *testing.T) {
	s := newTestStore()
	var calls []string
	s.Subscribe(func(p domain.Profile, revision uint64) {
		calls = append(calls, "first:"+p.DisplayFirstName())
	})
	s.Subscribe(func(p domain.Profile, revision uint64) {
		calls = append(calls, "second:"+p.DisplayFirstName())
	})

	s.Merge(domain.Profile{FirstName: domain.Text("Ada")})

	if len(calls) != 2 {
		t.Fatalf("observer calls = %v, want 2 before Merge returns", calls)
	}
	if calls[0] != "first:Ada" || calls[1] != "second:Ada" {
		t.Fatalf("observer calls = %v", calls)
	}
}

func TestStoreObserverCanRead(t *testing.T) {
	s := newTestStore()
	var seen string
	var seenRevision uint64
	s.Subscribe(func(_ domain.Profile, revision uint64) {
		seen = s.Read().DisplayAge()
		seenRevision = revision
	})

	s.Merge(domain.Profile{Age: domain.Text("36")})

	if seen != "36" {
		t.Fatalf("observer read age = %q, want %q", seen, "36")
	}
	if seenRevision != 1 {
		t.Fatalf("observer revision = %d, want 1", seenRevision)
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	s := newTestStore()
	calls := 0
	unsubscribe := s.Subscribe(func(domain.Profile, uint64) { calls++ })

	s.Merge(domain.Profile{Age: domain.Text("1")})
	unsubscribe()
	unsubscribe()
	s.Merge(domain.Profile{Age: domain.Text("2")})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestStoreUnsubscribeDuringNotify(t *testing.T) {
	s := newTestStore()
	calls := 0
	var unsubscribe func()
	unsubscribe = s.Subscribe(func(domain.Profile, uint64) {
		calls++
		unsubscribe()
	})

	s.Merge(domain.Profile{Age: domain.Text("1")})
	s.Merge(domain.Profile{Age: domain.Text("2")})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestStoreWatchKeepsLatest(t *testing.T) {
	s := newTestStore()
	ch, cancel := s.Watch()
	defer cancel()

	s.Merge(domain.Profile{Age: domain.Text("1")})
	s.Merge(domain.Profile{Age: domain.Text("2")})
	s.Merge(domain.Profile{Age: domain.Text("3")})

	select {
	case got := <-ch:
		if got.DisplayAge() != "3" {
			t.Fatalf("watched age = %q, want %q", got.DisplayAge(), "3")
		}
	default:
		t.Fatal("watch channel empty after updates")
	}

	select {
	case got := <-ch:
		t.Fatalf("unexpected extra value %+v", got)
	default:
	}
}

func TestStoreConcurrentMerges(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Merge(domain.Profile{FirstName: domain.Text("A")})
			_ = s.Read()
		}()
	}
	wg.Wait()

	if _, revision := s.Snapshot(); revision != 50 {
		t.Fatalf("revision = %d, want 50", revision)
	}
}
