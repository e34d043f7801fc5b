package progress

import (
	"fmt"
	"log/slog"
	"time"
)

// Logging returns a Factory whose sinks report through logger at most
// once per second, plus once when the transfer ends.
func Logging(logger *slog.Logger) Factory {
	if logger == nil {
		return Disabled
	}

	return func(desc string, total int64) Sink {
		return &logSink{
			logger:    logger,
			desc:      desc,
			total:     total,
			startTime: time.Now(),
			interval:  time.Second,
		}
	}
}

type logSink struct {
	logger      *slog.Logger
	desc        string
	transferred int64
	total       int64
	startTime   time.Time
	lastLog     time.Time
	interval    time.Duration
	finished    bool
}

func (s *logSink) Advance(n int) {
	s.transferred += int64(n)

	if time.Since(s.lastLog) >= s.interval {
		s.lastLog = time.Now()
		s.log("downloading")
	}
}

func (s *logSink) Finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.log("transfer finished")
}

func (s *logSink) log(msg string) {
	elapsed := time.Since(s.startTime)

	attrs := []any{
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", s.transferred,
	}
	if s.desc != "" {
		attrs = append(attrs, "desc", s.desc)
	}
	if s.total >= 0 {
		pct := 100.0
		if s.total > 0 {
			pct = float64(s.transferred) / float64(s.total) * 100
		}
		attrs = append(attrs, "total", s.total, "progress", fmt.Sprintf("%.1f%%", pct))
	}
	if secs := elapsed.Seconds(); secs > 0 {
		attrs = append(attrs, "mbps", fmt.Sprintf("%.2f", float64(s.transferred)/secs/(1024*1024)))
	}

	s.logger.Info(msg, attrs...)
}
