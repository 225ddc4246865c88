package dispatch

// Host is the embedding editor's file surface. The dispatcher routes
// file-level ":" commands here; the engine itself never touches the
// filesystem.
type Host interface {
	// Write saves the current buffer. name overrides the buffer's
	// path when non-empty.
	Write(name string, force bool) error

	// WriteAll saves every open buffer.
	WriteAll(force bool) error

	// Quit closes the current window.
	Quit(force bool) error

	// QuitAll closes every window.
	QuitAll(force bool) error

	// NextFile and PrevFile move through the argument list.
	NextFile(force bool) error
	PrevFile(force bool) error

	// Edit opens a file in the current window.
	Edit(name string, force bool) error
}

// NopHost ignores every file command. Useful for tests and for
// embedding the engine without a file list.
type NopHost struct{}

func (NopHost) Write(string, bool) error  { return nil }
func (NopHost) WriteAll(bool) error       { return nil }
func (NopHost) Quit(bool) error           { return nil }
func (NopHost) QuitAll(bool) error        { return nil }
func (NopHost) NextFile(bool) error       { return nil }
func (NopHost) PrevFile(bool) error       { return nil }
func (NopHost) Edit(string, bool) error   { return nil }
