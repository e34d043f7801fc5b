package progress

// Sink receives the byte count of every chunk written.
type Sink interface {
	Advance(n int)
}

// Finisher is implemented by sinks that hold display state which must
// be flushed when the transfer ends.
type Finisher interface {
	Finish()
}

// Factory builds a Sink for one transfer. desc may be empty, and total
// is negative when the size is not known up front.
type Factory func(desc string, total int64) Sink

// Nop discards all progress.
var Nop Sink = nopSink{}

type nopSink struct{}

func (nopSink) Advance(int) {}

// Disabled is a Factory that always returns Nop.
func Disabled(string, int64) Sink { return Nop }

// Func adapts a plain callback into a Sink.
type Func func(n int)

func (f Func) Advance(n int) {
	if f != nil {
		f(n)
	}
}

// Finish calls s.Finish if s implements Finisher.
func Finish(s Sink) {
	if f, ok := s.(Finisher); ok {
		f.Finish()
	}
}

// New returns the sink built by f, falling back to Nop when f is nil
// or yields nothing.
func New(f Factory, desc string, total int64) Sink {
	if f == nil {
		return Nop
	}

	if s := f(desc, total); s != nil {
		return s
	}

	return Nop
}
