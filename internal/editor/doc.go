// Package editor defines the surface the emulation engine consumes from
// its host: read-only views of buffer text, caret snapshots, and the
// mutation operations the dispatcher applies when executing operators.
//
// The engine never owns buffer text. Hosts implement View and Buffer;
// LineBuffer is a reference implementation used by tests and the bundled
// terminal front end.
package editor
