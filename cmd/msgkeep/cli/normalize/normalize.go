// Package normalize strips git-generated noise from candidate commit messages.
//
// Two passes: the verbose "scissors" section appended by 'git commit -v' is
// cut first, then comment lines are removed. Both are pure string transforms.
package normalize

import (
	"strings"
)

// VerboseMarker is the sentinel line git inserts above the diff shown by
// 'git commit --verbose'. The marker and everything after it is reference
// material, never part of the message.
const VerboseMarker = "# ------------------------ >8 ------------------------"

// StripComments removes every line whose first character is the comment
// marker. Lines that merely contain the marker elsewhere are kept verbatim,
// as are empty lines.
func StripComments(text, marker string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, marker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripVerboseSection returns the text strictly before the verbose marker.
// The marker line and everything after it is discarded. Text without the
// marker is returned unchanged.
func StripVerboseSection(text string) string {
	before, _, _ := strings.Cut(text, VerboseMarker)
	return before
}

// Clean applies both passes in the order callers rely on: verbose section
// first, then comment lines, so the marker line itself never needs
// special-casing in the comment pass.
func Clean(text, marker string) string {
	return StripComments(StripVerboseSection(text), marker)
}
