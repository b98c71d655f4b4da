package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func newBufferLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ConsoleLogger{out: &buf, verbose: verbose}, &buf
}

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	logger, buf := newBufferLogger(true)
	logger.Verbose("test message: %s", "value")

	expected := "[VERBOSE] test message: value\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	logger, buf := newBufferLogger(false)
	logger.Verbose("test message: %s", "value")

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestConsoleLogger_Info(t *testing.T) {
	logger, buf := newBufferLogger(false)
	logger.Info("loaded %d rows", 42)

	expected := "loaded 42 rows\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_Error(t *testing.T) {
	logger, buf := newBufferLogger(false)
	logger.Error("boom: %v", fmt.Errorf("bad"))

	expected := "[ERROR] boom: bad\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_NoArgsLeavesVerbsAlone(t *testing.T) {
	logger, buf := newBufferLogger(false)
	// A message containing a percent sign must not be mangled when no
	// args are supplied.
	logger.Info("progress: 100%")

	expected := "progress: 100%\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_ConcurrentUse(t *testing.T) {
	logger, buf := newBufferLogger(true)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("line %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Errorf("Expected 50 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "line ") {
			t.Errorf("Interleaved output: %q", line)
		}
	}
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	logger := NewNullLogger()
	// Must not panic and must accept any verb/arg combination.
	logger.Verbose("ignored %d", 1)
	logger.Info("ignored")
	logger.Error("ignored %s %s", "a", "b")
}
