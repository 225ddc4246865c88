// Package dispatch drives the modal editing state machine.
//
// The Dispatcher owns the mode, the pending operator state, and the
// register and mark files. HandleKey routes keys by mode: normal and
// visual keys feed the vim parser, whose completed commands resolve
// motions and apply operators; insert mode edits the buffer directly.
// ExecuteCommandLine runs ":" commands parsed by the ex package.
// Validation always precedes mutation: a failed key sequence or
// command line leaves the buffer byte-identical.
package dispatch
