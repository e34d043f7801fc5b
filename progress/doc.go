// Package progress reports byte progress of a download to an optional
// display.
//
// Downloads report through a [Sink], a single Advance(n) call per chunk.
// A [Factory] builds the sink once the expected size is known:
//
//	f := progress.Terminal(os.Stderr) // bar on a tty, no-op otherwise
//	sink := f("Downloading data/train.csv", resp.ContentLength)
//	sink.Advance(8192)
//	progress.Finish(sink)
//
// When no display is available the [Nop] sink is used, so progress
// reporting never decides whether a download succeeds.
package progress
