package memory

import (
	"context"
	"testing"
	"time"

	"github.com/w-h-a/recall/storer"
)

func TestSearchOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	for _, rec := range []storer.Record{
		{Owner: "1", Category: "task", Text: "far", Embedding: []float32{0, 0, 1}},
		{Owner: "1", Category: "task", Text: "near", Embedding: []float32{1, 0, 0}},
		{Owner: "1", Category: "task", Text: "middle", Embedding: []float32{1, 1, 0}},
	} {
		if _, err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, 10, storer.WithOwner("1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	want := []string{"near", "middle", "far"}
	for i, match := range matches {
		if match.Record.Text != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], match.Record.Text)
		}
	}

	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("distances not non-decreasing at position %d", i)
		}
	}
}

func TestSearchScopesToOwner(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	records := []storer.Record{
		{Owner: "1", Category: "task", Text: "mine", Embedding: []float32{1, 0, 0}},
		{Owner: "2", Category: "task", Text: "theirs", Embedding: []float32{1, 0, 0}},
		{Owner: "", Category: "task", Text: "shared", Embedding: []float32{1, 0, 0}},
	}
	for _, rec := range records {
		if _, err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, 10, storer.WithOwner("1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	for _, match := range matches {
		if match.Record.Text == "theirs" {
			t.Errorf("another owner's record leaked into the results")
		}
	}
}

func TestSearchNeverPads(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Category: "task", Text: "only", Embedding: []float32{1, 0, 0}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, storer.Record{Owner: "2", Category: "task", Text: "other", Embedding: []float32{1, 0, 0}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, 5, storer.WithOwner("1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	if matches[0].Record.Text != "only" {
		t.Errorf("expected %q, got %q", "only", matches[0].Record.Text)
	}
}

func TestSearchBreaksTiesByRecency(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()

	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "older", Embedding: []float32{1, 0, 0}, CreatedAt: older}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "newer", Embedding: []float32{1, 0, 0}, CreatedAt: newer}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, 2, storer.WithOwner("1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	if matches[0].Record.Text != "newer" {
		t.Errorf("expected most recent record first on a tie, got %q", matches[0].Record.Text)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	id, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "gone soon", Embedding: []float32{1, 0, 0}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	deleted, err := s.Delete(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("expected first delete to report true, got %v, %v", deleted, err)
	}

	for range 2 {
		deleted, err := s.Delete(ctx, id)
		if err != nil {
			t.Fatalf("repeat delete errored: %v", err)
		}
		if deleted {
			t.Errorf("repeat delete reported true")
		}
	}
}

func TestInsertRejectsWrongDimensions(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "bad", Embedding: []float32{1, 0}}); err == nil {
		t.Fatalf("expected a dimension mismatch error")
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStorer(storer.WithDimensions(3))

	target := []float32{0.3, 0.6, 0.1}

	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "target", Embedding: target}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, storer.Record{Owner: "1", Text: "noise", Embedding: []float32{0, 0, 1}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	matches, err := s.Search(ctx, target, 2, storer.WithOwner("1"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(matches) == 0 || matches[0].Record.Text != "target" {
		t.Fatalf("expected the record's own embedding to rank first, got %+v", matches)
	}

	if matches[0].Distance > 1e-6 {
		t.Errorf("self-distance should be ~0, got %f", matches[0].Distance)
	}
}
