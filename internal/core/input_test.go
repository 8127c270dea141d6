package core

import "testing"

func TestActionRoundTrip(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionLeft, ActionRight, ActionStop, ActionFire} {
		parsed, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q) failed: %v", a.String(), err)
		}
		if parsed != a {
			t.Errorf("ParseAction(%q) = %v, expected %v", a.String(), parsed, a)
		}
	}
}

func TestParseActionUnknown(t *testing.T) {
	if _, err := ParseAction("jump"); err == nil {
		t.Error("ParseAction should reject unknown actions")
	}
}

func TestRowColorCycles(t *testing.T) {
	if RowColor(0) != RowColor(len(RowColors)) {
		t.Error("RowColor should cycle through the palette")
	}
	if RowColor(-1) != RowColor(1) {
		t.Error("RowColor should handle negative rows")
	}
}
