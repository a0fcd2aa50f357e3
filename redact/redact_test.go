package redact

import (
	"strings"
	"testing"
)

// highEntropySecret is a string with Shannon entropy > 4.5 that will trigger redaction.
const highEntropySecret = "sk-ant-REDACTED"

func TestMessage_NoSecrets(t *testing.T) {
	input := "Fix login timeout\n\nThe session cache was never invalidated."
	if got := Message(input); got != input {
		t.Errorf("expected unchanged input, got %q", got)
	}
}

func TestMessage_WithSecret(t *testing.T) {
	input := "Rotate key, old one was " + highEntropySecret + " oops"
	got := Message(input)
	want := "Rotate key, old one was REDACTED oops"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMessage_MultilineKeepsStructure(t *testing.T) {
	input := "Subject line\n\nBody with token " + highEntropySecret + "\nand a normal line"
	got := Message(input)

	if strings.Contains(got, highEntropySecret) {
		t.Error("secret survived redaction")
	}
	if !strings.HasPrefix(got, "Subject line\n\nBody with token ") {
		t.Errorf("surrounding text altered: %q", got)
	}
	if !strings.HasSuffix(got, "\nand a normal line") {
		t.Errorf("trailing text altered: %q", got)
	}
}

func TestMessage_CommonIdentifiersKept(t *testing.T) {
	// Ordinary code identifiers sit well below the entropy threshold and
	// must not be flagged.
	input := "Refactor buildRestoredContent and deduplicate_messages helpers"
	if got := Message(input); got != input {
		t.Errorf("expected unchanged input, got %q", got)
	}
}

func TestShannonEntropy(t *testing.T) {
	if e := shannonEntropy(""); e != 0 {
		t.Errorf("entropy of empty string = %f, want 0", e)
	}
	if e := shannonEntropy("aaaaaaaaaa"); e != 0 {
		t.Errorf("entropy of uniform string = %f, want 0", e)
	}
	low := shannonEntropy("aaaaaaaaab")
	high := shannonEntropy(highEntropySecret)
	if low >= high {
		t.Errorf("expected entropy ordering, got low=%f high=%f", low, high)
	}
	if high <= entropyThreshold {
		t.Errorf("test secret entropy %f not above threshold %f", high, entropyThreshold)
	}
}
