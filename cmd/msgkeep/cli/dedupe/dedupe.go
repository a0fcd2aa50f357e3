// Package dedupe collapses saved messages with identical content.
//
// A pre-commit run executes every commit-msg hook even after one fails, so
// several hooks can preserve the same message for a single commit attempt.
// Without this pass the same text would be offered back to the user once per
// failed hook.
package dedupe

import (
	"github.com/msgkeep/cli/cmd/msgkeep/cli/store"
)

// Messages groups entries by exact content equality and merges each group
// into a single entry:
//
//   - repository and branch come from the last-seen entry in the group
//   - created is the max over the group
//   - hook names are joined in first-seen order with " and "
//
// Groups of size one pass through unchanged. Output order is the order in
// which each distinct content value was first encountered. Idempotent.
func Messages(messages []store.SavedMessage) []store.SavedMessage {
	byContent := make(map[string]int, len(messages))
	merged := make([]store.SavedMessage, 0, len(messages))

	for _, m := range messages {
		i, ok := byContent[m.Content]
		if !ok {
			byContent[m.Content] = len(merged)
			merged = append(merged, m)
			continue
		}

		existing := merged[i]
		existing.Repository = m.Repository
		existing.Branch = m.Branch
		existing.HookName = existing.HookName + " and " + m.HookName
		if m.Created.After(existing.Created) {
			existing.Created = m.Created
		}
		merged[i] = existing
	}

	return merged
}
