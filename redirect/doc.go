// Package redirect provides ready-made process.Redirector implementations.
//
//   - Writer prints lines to an io.Writer pair, with an optional prefix and
//     a lipgloss style for stderr.
//   - Log forwards lines to a logger, one entry per line.
//   - Multi fans lines out to several redirectors.
//   - Recorder keeps every line in arrival order, tagged with its stream.
//
// Redirectors receive one call at a time from a process.Output, but the
// types here are also safe to share between several Outputs.
package redirect
