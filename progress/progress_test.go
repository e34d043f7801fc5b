package progress

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.00B"},
		{5, "5.00B"},
		{10, "10.0B"},
		{500, "500B"},
		{999.6, "1.00kB"},
		{1500, "1.50kB"},
		{45600, "45.6kB"},
		{123456, "123kB"},
		{2_500_000, "2.50MB"},
		{3e12, "3.00TB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.input); got != tt.expected {
			t.Errorf("formatSize(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "00:00"},
		{1500 * time.Millisecond, "00:02"},
		{75 * time.Second, "01:15"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		if got := formatInterval(tt.input); got != tt.expected {
			t.Errorf("formatInterval(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBar_Render(t *testing.T) {
	testCases := []struct {
		name    string
		desc    string
		total   int64
		current int64
		elapsed time.Duration
		exp     string
	}{
		{
			name:    "half way",
			desc:    "Downloading x",
			total:   1000,
			current: 500,
			elapsed: 2 * time.Second,
			exp:     "Downloading x:  50%|██████████          | 500B/1.00kB [00:02<00:02, 250B/s]",
		},
		{
			name:    "not started",
			total:   10,
			current: 0,
			exp:     "  0%|                    | 0.00B/10.0B [00:00<?, ?B/s]",
		},
		{
			name:    "indeterminate",
			total:   -1,
			current: 123456,
			elapsed: time.Second,
			exp:     "123kB [00:01, 123kB/s]",
		},
		{
			name:    "empty file",
			total:   0,
			current: 0,
			elapsed: time.Second,
			exp:     "100%|████████████████████| 0.00B/0.00B [00:01<?, ?B/s]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBar(&bytes.Buffer{}, tc.desc, tc.total)
			b.current = tc.current

			if got := b.render(tc.elapsed); got != tc.exp {
				t.Errorf("render mismatch\n got: %q\nwant: %q", got, tc.exp)
			}
		})
	}
}

func TestBar_AdvanceAndFinish(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	b := NewBar(&buf, "Downloading f", 16384)
	b.now = func() time.Time { return clock }
	b.start = clock

	b.Advance(8192)
	clock = clock.Add(time.Second)
	b.Advance(8192)

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("expected final draw at 100%%, got %q", out)
	}
	if strings.Count(out, "\r") != 2 {
		t.Errorf("expected 2 redraws, got %q", out)
	}

	b.Finish()
	b.Finish()
	b.Advance(1)

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Finish should end the line")
	}
	if b.current != 16384 {
		t.Errorf("Advance after Finish should be ignored, current = %d", b.current)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("expected a single newline, got %d", n)
	}
}

func TestTerminal_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	defer f.Close()

	sink := Terminal(f)("Downloading x", 10)
	if sink != Nop {
		t.Errorf("expected Nop for a regular file, got %T", sink)
	}

	if Terminal(nil)("", -1) != Nop {
		t.Error("expected Nop for a nil file")
	}
}

func TestNew_Fallbacks(t *testing.T) {
	if New(nil, "x", 1) != Nop {
		t.Error("nil factory should yield Nop")
	}

	nilFactory := func(string, int64) Sink { return nil }
	if New(nilFactory, "x", 1) != Nop {
		t.Error("factory returning nil should yield Nop")
	}

	var got []int
	s := New(func(string, int64) Sink { return Func(func(n int) { got = append(got, n) }) }, "x", 1)
	s.Advance(3)
	s.Advance(4)
	Finish(s)

	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("unexpected advances: %v", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	s := Logging(logger)("Downloading x", 10)
	s.Advance(4)
	s.Advance(6)
	Finish(s)
	Finish(s)

	out := buf.String()
	if !strings.Contains(out, `"msg":"downloading"`) {
		t.Errorf("expected a downloading line, got %s", out)
	}
	if strings.Count(out, `"msg":"transfer finished"`) != 1 {
		t.Errorf("expected one finished line, got %s", out)
	}
	if !strings.Contains(out, `"transferred":10`) || !strings.Contains(out, `"progress":"100.0%"`) {
		t.Errorf("expected final totals, got %s", out)
	}

	if Logging(nil)("", -1) != Nop {
		t.Error("nil logger should disable progress")
	}
}
