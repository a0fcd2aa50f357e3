package dedupe

import (
	"reflect"
	"testing"
	"time"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/store"
)

func msg(repo, branch, hook, content string, created time.Time) store.SavedMessage {
	return store.SavedMessage{
		Repository: repo,
		Branch:     branch,
		HookName:   hook,
		Content:    content,
		Created:    created,
	}
}

func TestMessages_MergesIdenticalContent(t *testing.T) {
	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(5 * time.Second)

	input := []store.SavedMessage{
		msg("/repo", "main", "lint", "Fix bug", earlier),
		msg("/repo", "main", "spellcheck", "Fix bug", later),
	}

	got := Messages(input)

	if len(got) != 1 {
		t.Fatalf("Messages() returned %d entries, want 1", len(got))
	}
	if got[0].HookName != "lint and spellcheck" {
		t.Errorf("HookName = %q, want %q", got[0].HookName, "lint and spellcheck")
	}
	if !got[0].Created.Equal(later) {
		t.Errorf("Created = %v, want later timestamp %v", got[0].Created, later)
	}
	if got[0].Content != "Fix bug" {
		t.Errorf("Content = %q, want unchanged", got[0].Content)
	}
}

func TestMessages_MergedEntryKeepsMaxTimestamp(t *testing.T) {
	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Minute)

	// Later timestamp first: max, not last, must win.
	input := []store.SavedMessage{
		msg("/repo", "main", "a", "same", later),
		msg("/repo", "main", "b", "same", earlier),
	}

	got := Messages(input)
	if len(got) != 1 {
		t.Fatalf("Messages() returned %d entries, want 1", len(got))
	}
	if !got[0].Created.Equal(later) {
		t.Errorf("Created = %v, want %v", got[0].Created, later)
	}
	if got[0].HookName != "a and b" {
		t.Errorf("HookName = %q, want %q", got[0].HookName, "a and b")
	}
}

func TestMessages_DistinctContentPassesThrough(t *testing.T) {
	now := time.Now()
	input := []store.SavedMessage{
		msg("/repo", "main", "lint", "first", now),
		msg("/repo", "main", "lint", "second", now),
	}

	got := Messages(input)
	if !reflect.DeepEqual(got, input) {
		t.Errorf("Messages() = %v, want input unchanged %v", got, input)
	}
}

func TestMessages_OutputOrderIsFirstEncounter(t *testing.T) {
	now := time.Now()
	input := []store.SavedMessage{
		msg("/repo", "main", "a", "one", now),
		msg("/repo", "main", "b", "two", now),
		msg("/repo", "main", "c", "one", now),
	}

	got := Messages(input)
	if len(got) != 2 {
		t.Fatalf("Messages() returned %d entries, want 2", len(got))
	}
	if got[0].Content != "one" || got[1].Content != "two" {
		t.Errorf("output order = [%q, %q], want first-encounter order [one, two]", got[0].Content, got[1].Content)
	}
	if got[0].HookName != "a and c" {
		t.Errorf("HookName = %q, want %q", got[0].HookName, "a and c")
	}
}

func TestMessages_Idempotent(t *testing.T) {
	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	input := []store.SavedMessage{
		msg("/repo", "main", "lint", "Fix bug", earlier),
		msg("/repo", "main", "spellcheck", "Fix bug", earlier.Add(time.Second)),
		msg("/repo", "main", "lint", "Other", earlier),
	}

	once := Messages(input)
	twice := Messages(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Messages() not idempotent: first %v, second %v", once, twice)
	}
}

func TestMessages_Empty(t *testing.T) {
	if got := Messages(nil); len(got) != 0 {
		t.Errorf("Messages(nil) = %v, want empty", got)
	}
}
