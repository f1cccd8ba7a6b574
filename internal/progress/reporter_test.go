package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{Description: "Indexing", Out: &buf}
	r.Start(2)
	r.Update(1, "Tam Vô")
	r.Update(2, "Vô Tự Ngã")
	r.Finish()

	want := "Indexing: 2 items\n[1/2] Tam Vô\n[2/2] Vô Tự Ngã\nIndexing: done\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*LineReporter); !ok {
		t.Error("expected LineReporter under CI")
	}
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter("x").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestNopIsSilent(t *testing.T) {
	var r Reporter = Nop{}
	r.Start(3)
	r.Update(1, strings.Repeat("x", 3))
	r.Finish()
}
