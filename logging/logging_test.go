package logging_test

import (
	"strings"
	"testing"

	"github.com/lucidforge/sbcoord/logging"
)

func TestLog_PrintfAccumulates(t *testing.T) {
	l := logging.New()
	l.Printf("hello %s", "world")
	l.Printf("second line")
	got := l.String()
	if !strings.Contains(got, "hello world") || !strings.Contains(got, "second line") {
		t.Fatalf("expected both lines in accumulated log, got %q", got)
	}
}

func TestLog_Reset(t *testing.T) {
	l := logging.New()
	l.Println("one")
	l.Reset()
	if l.String() != "" {
		t.Fatalf("expected Reset to clear accumulated text")
	}
	l.Println("two")
	if !strings.Contains(l.String(), "two") {
		t.Fatalf("expected Log to remain usable after Reset")
	}
}
