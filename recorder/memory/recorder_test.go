package memory

import (
	"context"
	"testing"

	"github.com/w-h-a/recall/recorder"
)

func TestRecordAppendsOrderedPairs(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	if err := r.Record(ctx, "1", "first question", "first answer"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Record(ctx, "1", "second question", "second answer"); err != nil {
		t.Fatalf("record: %v", err)
	}

	turns, err := r.List(ctx, "1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}

	wantRoles := []string{recorder.RoleUser, recorder.RoleAssistant, recorder.RoleUser, recorder.RoleAssistant}
	wantContent := []string{"first question", "first answer", "second question", "second answer"}

	for i, turn := range turns {
		if turn.Role != wantRoles[i] {
			t.Errorf("turn %d: expected role %q, got %q", i, wantRoles[i], turn.Role)
		}
		if turn.Content != wantContent[i] {
			t.Errorf("turn %d: expected content %q, got %q", i, wantContent[i], turn.Content)
		}
		if i > 0 && turn.CreatedAt.Before(turns[i-1].CreatedAt) {
			t.Errorf("turn %d created before turn %d", i, i-1)
		}
	}
}

func TestListScopesToOwner(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	if err := r.Record(ctx, "1", "mine", "yes"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Record(ctx, "2", "theirs", "no"); err != nil {
		t.Fatalf("record: %v", err)
	}

	turns, err := r.List(ctx, "1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}

	for _, turn := range turns {
		if turn.Owner != "1" {
			t.Errorf("another owner's turn leaked: %+v", turn)
		}
	}
}

func TestListHonorsLimit(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	if err := r.Record(ctx, "1", "first question", "first answer"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Record(ctx, "1", "second question", "second answer"); err != nil {
		t.Fatalf("record: %v", err)
	}

	turns, err := r.List(ctx, "1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}

	// the limit pages from the start of the log, oldest first
	if turns[0].Content != "first question" || turns[1].Content != "first answer" {
		t.Errorf("expected the oldest exchange, got %q and %q", turns[0].Content, turns[1].Content)
	}
}
