// Package ex parses command-line (":") commands.
//
// Parsing is pure: Parse maps a command-line string to a Command value
// without touching editor state. A Command carries a symbolic range
// that callers resolve against a buffer when they execute it. Command
// names abbreviate down to per-command minimal prefixes, matching the
// irregular table Vim ships rather than any derived rule.
package ex
