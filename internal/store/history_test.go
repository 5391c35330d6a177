package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/cardsearch/internal/testutil"
)

var epoch = time.Date(2013, 5, 3, 12, 0, 0, 0, time.UTC)

func deterministicStore(t *testing.T) *Store {
	t.Helper()
	ids := testutil.NewSequentialIDs("search")
	clock := testutil.NewStepClock(epoch, time.Second)
	return createTestStore(t, WithIDGenerator(ids.Next), WithClock(clock.Now))
}

func TestRecord_AssignsIDSeqAndTime(t *testing.T) {
	s := deterministicStore(t)
	ctx := context.Background()

	e, err := s.Record(ctx, Entry{Query: "b:rtr", Scope: "printings", ResultCount: 12, Corpus: "fixture"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if e.ID != "search-0001" {
		t.Errorf("ID = %q, want search-0001", e.ID)
	}
	if e.Seq != 1 {
		t.Errorf("Seq = %d, want 1", e.Seq)
	}
	if !e.RecordedAt.Equal(epoch) {
		t.Errorf("RecordedAt = %v, want %v", e.RecordedAt, epoch)
	}
	if e.ResultCount != 12 || e.Scope != "printings" || e.Corpus != "fixture" {
		t.Errorf("stored entry = %+v", e)
	}

	e2, err := s.Record(ctx, Entry{Query: "zz:foo", ErrorCode: "unknown_field"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if e2.Seq != 2 {
		t.Errorf("second Seq = %d, want 2", e2.Seq)
	}
	if !e2.Failed() {
		t.Error("entry with an error code should report Failed")
	}
}

func TestRecord_DefaultIDsAreUUIDv7(t *testing.T) {
	s := createTestStore(t)

	e, err := s.Record(context.Background(), Entry{Query: "t:goblin"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	id, err := uuid.Parse(e.ID)
	if err != nil {
		t.Fatalf("ID %q is not a UUID: %v", e.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("UUID version = %d, want 7", id.Version())
	}
}

func TestRecord_DuplicateIDIsNoOp(t *testing.T) {
	s := deterministicStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, Entry{ID: "fixed", Query: "c:r"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	again, err := s.Record(ctx, Entry{ID: "fixed", Query: "something else"})
	if err != nil {
		t.Fatalf("second Record() failed: %v", err)
	}
	if again.Query != "c:r" || again.Seq != first.Seq {
		t.Errorf("duplicate write changed the entry: %+v", again)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	s := deterministicStore(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c", "d"} {
		if _, err := s.Record(ctx, Entry{Query: q}); err != nil {
			t.Fatalf("Record(%q) failed: %v", q, err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	want := []string{"d", "c", "b"}
	if len(got) != len(want) {
		t.Fatalf("Recent() returned %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Query != want[i] {
			t.Errorf("Recent()[%d] = %q, want %q", i, e.Query, want[i])
		}
	}
}

func TestRecent_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)

	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Recent() = %#v, want empty slice", got)
	}
}

func TestTopQueries(t *testing.T) {
	s := deterministicStore(t)
	ctx := context.Background()

	record := []Entry{
		{Query: "e:rtr"},
		{Query: "t:goblin"},
		{Query: "t:goblin"},
		{Query: "zz:foo", ErrorCode: "unknown_field"},
		{Query: "zz:foo", ErrorCode: "unknown_field"},
		{Query: "zz:foo", ErrorCode: "unknown_field"},
		{Query: "c:w"},
		{Query: "e:rtr"},
	}
	for _, e := range record {
		if _, err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	got, err := s.TopQueries(ctx, 10)
	if err != nil {
		t.Fatalf("TopQueries() failed: %v", err)
	}
	want := []QueryCount{{"e:rtr", 2}, {"t:goblin", 2}, {"c:w", 1}}
	if len(got) != len(want) {
		t.Fatalf("TopQueries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopQueries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecord_ConcurrentWritersGetDistinctSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Record(ctx, Entry{Query: "is:split"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Record() failed: %v", err)
	}

	entries, err := s.Recent(ctx, writers)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	seen := map[int64]bool{}
	for _, e := range entries {
		if seen[e.Seq] {
			t.Errorf("duplicate seq %d", e.Seq)
		}
		seen[e.Seq] = true
	}
	if len(seen) != writers {
		t.Errorf("got %d distinct seq values, want %d", len(seen), writers)
	}
}
