package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/ex"
)

func TestExecuteSet(t *testing.T) {
	d, _ := newTestDispatcher(t, "text", 0)

	if _, err := d.ExecuteCommandLine("set history=100"); err != nil {
		t.Fatal(err)
	}
	if got := d.Options().Accessor(d.Buffer()).Int("history"); got != 100 {
		t.Errorf("history = %d, want 100", got)
	}

	msg, err := d.ExecuteCommandLine("set history?")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "  history=100" {
		t.Errorf("query = %q, want %q", msg, "  history=100")
	}
}

func TestExecuteSetLocalScope(t *testing.T) {
	d, _ := newTestDispatcher(t, "text", 0)

	if _, err := d.ExecuteCommandLine("setlocal shiftwidth=2"); err != nil {
		t.Fatal(err)
	}
	msg, err := d.ExecuteCommandLine("setglobal shiftwidth?")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "  shiftwidth=8" {
		t.Errorf("global query = %q, want %q", msg, "  shiftwidth=8")
	}
	if got := d.Options().Accessor(d.Buffer()).Int("shiftwidth"); got != 2 {
		t.Errorf("effective shiftwidth = %d, want 2", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		line     string
		wantMsg  string
		sentinel error
	}{
		{"bogus", "E492: Not an editor command: bogus", ex.ErrNotEditorCommand},
		{"wx", "E492: Not an editor command: wx", ex.ErrNotEditorCommand},
		{"1,2set nu", "E481: No range allowed", ex.ErrNoRangeAllowed},
		{"d!", "E477: No ! allowed", ex.ErrNoBangAllowed},
		{"'zd", "E20: Mark not set: z", ex.ErrMarkNotSet},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, buf := newTestDispatcher(t, "one\ntwo", 0)

			_, err := d.ExecuteCommandLine(tt.line)
			if err == nil {
				t.Fatalf("ExecuteCommandLine(%q): expected error", tt.line)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
			if d.Status() != tt.wantMsg {
				t.Errorf("status = %q, want %q", d.Status(), tt.wantMsg)
			}
			if got := buf.String(); got != "one\ntwo" {
				t.Errorf("failed command mutated buffer: %q", got)
			}
		})
	}
}

func TestExecuteErrorLeavesVisualMode(t *testing.T) {
	d, _ := newTestDispatcher(t, "one\ntwo", 0)

	feedKeys(d, "v")
	if _, err := d.ExecuteCommandLine("bogus"); err == nil {
		t.Fatal("expected error")
	}
	if d.Mode() != editor.ModeNormal {
		t.Errorf("mode = %v, want normal", d.Mode())
	}
}

func TestExecuteDelete(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2d", "one\nthree"},
		{"%d", ""},
		{"1,2d", "three"},
		{"$d", "one\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, buf := newTestDispatcher(t, "one\ntwo\nthree", 0)
			if _, err := d.ExecuteCommandLine(tt.line); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteDeleteIntoRegister(t *testing.T) {
	d, buf := newTestDispatcher(t, "one\ntwo\nthree", 0)

	if _, err := d.ExecuteCommandLine("1,2d a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "three" {
		t.Fatalf("buffer = %q, want %q", got, "three")
	}
	content, linewise := d.Registers().Get('a')
	if content != "one\ntwo\n" || !linewise {
		t.Errorf("register a = %q linewise=%v", content, linewise)
	}
}

func TestExecuteDeleteReport(t *testing.T) {
	d, _ := newTestDispatcher(t, "a\nb\nc\nd", 0)

	msg, err := d.ExecuteCommandLine("%d")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "4 fewer lines" {
		t.Errorf("message = %q, want %q", msg, "4 fewer lines")
	}
}

func TestExecuteYankAndPut(t *testing.T) {
	d, buf := newTestDispatcher(t, "one\ntwo", 0)

	if _, err := d.ExecuteCommandLine("1y"); err != nil {
		t.Fatal(err)
	}
	if content, _ := d.Registers().Get('0'); content != "one\n" {
		t.Fatalf("yank register = %q, want %q", content, "one\n")
	}
	if _, err := d.ExecuteCommandLine("2put"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "one\ntwo\none" {
		t.Errorf("buffer = %q, want %q", got, "one\ntwo\none")
	}
	if got := buf.Caret().Offset; got != 8 {
		t.Errorf("caret = %d, want 8", got)
	}
}

func TestExecutePutEmptyRegister(t *testing.T) {
	d, _ := newTestDispatcher(t, "one", 0)

	_, err := d.ExecuteCommandLine("put x")
	if err == nil || err.Error() != "E353: Nothing in register x" {
		t.Errorf("error = %v, want E353", err)
	}
}

func TestExecuteCopy(t *testing.T) {
	d, buf := newTestDispatcher(t, "a\nb\nc", 0)

	if _, err := d.ExecuteCommandLine("1copy $"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\nc\na" {
		t.Errorf("buffer = %q, want %q", got, "a\nb\nc\na")
	}
}

func TestExecuteCopyAboveFirstLine(t *testing.T) {
	d, buf := newTestDispatcher(t, "a\nb", 0)

	if _, err := d.ExecuteCommandLine("2co 0"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\na\nb" {
		t.Errorf("buffer = %q, want %q", got, "b\na\nb")
	}
}

func TestExecuteMove(t *testing.T) {
	d, buf := newTestDispatcher(t, "a\nb\nc", 0)

	if _, err := d.ExecuteCommandLine("1m$"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\nc\na" {
		t.Errorf("buffer = %q, want %q", got, "b\nc\na")
	}
}

func TestExecuteMoveIntoItself(t *testing.T) {
	d, buf := newTestDispatcher(t, "a\nb\nc", 0)

	_, err := d.ExecuteCommandLine("1,3m2")
	if err == nil || !strings.HasPrefix(err.Error(), "E134") {
		t.Errorf("error = %v, want E134", err)
	}
	if got := buf.String(); got != "a\nb\nc" {
		t.Errorf("buffer = %q, want unchanged", got)
	}
}

func TestExecuteGotoLine(t *testing.T) {
	d, buf := newTestDispatcher(t, "one\n  two\nthree", 0)

	if _, err := d.ExecuteCommandLine("2"); err != nil {
		t.Fatal(err)
	}
	if got := buf.Caret().Offset; got != 6 {
		t.Errorf("caret = %d, want 6 (first non-blank)", got)
	}

	if _, err := d.ExecuteCommandLine("$"); err != nil {
		t.Fatal(err)
	}
	if got := buf.Caret().Offset; got != 10 {
		t.Errorf("caret = %d, want 10", got)
	}

	if _, err := d.ExecuteCommandLine("99"); err == nil {
		t.Error("line past the end: expected range error")
	}
}

func TestExecutePrint(t *testing.T) {
	d, _ := newTestDispatcher(t, "one\ntwo\nthree", 0)

	msg, err := d.ExecuteCommandLine("1,2p")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "one\ntwo" {
		t.Errorf("output = %q, want %q", msg, "one\ntwo")
	}
}

func TestExecuteSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		line string
		want string
	}{
		{"first match only", "foo foo\nfoo bar", "%s/foo/X/", "X foo\nX bar"},
		{"global flag", "foo foo\nfoo bar", "%s/foo/X/g", "X X\nX bar"},
		{"current line default", "aa\naa", "s/a/b/", "ba\naa"},
		{"group reference", "foo bar", "s/(fo)o/\\1x/", "fox bar"},
		{"whole match reference", "foo bar", "s/foo/[&]/", "[foo] bar"},
		{"alternate delimiter", "a/b", "s#/#-#", "a-b"},
		{"case flag", "FOO", "s/foo/x/i", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, buf := newTestDispatcher(t, tt.text, 0)
			if _, err := d.ExecuteCommandLine(tt.line); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteSubstituteNotFound(t *testing.T) {
	d, buf := newTestDispatcher(t, "foo", 0)

	_, err := d.ExecuteCommandLine("s/xyz/a/")
	if err == nil || err.Error() != "E486: Pattern not found: xyz" {
		t.Errorf("error = %v, want E486", err)
	}
	if got := buf.String(); got != "foo" {
		t.Errorf("buffer = %q, want unchanged", got)
	}
}

func TestExecuteSubstituteRepeat(t *testing.T) {
	d, buf := newTestDispatcher(t, "aa\naa", 0)

	if _, err := d.ExecuteCommandLine("1s/a/b/"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteCommandLine("2"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteCommandLine("s"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "ba\nba" {
		t.Errorf("buffer = %q, want %q", got, "ba\nba")
	}
}

func TestExecuteSubstituteGdefault(t *testing.T) {
	d, buf := newTestDispatcher(t, "aaa", 0)

	if _, err := d.ExecuteCommandLine("set gdefault"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteCommandLine("s/a/b/"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "bbb" {
		t.Fatalf("buffer = %q, want %q", got, "bbb")
	}
	// An explicit g flag flips back to first-match.
	if _, err := d.ExecuteCommandLine("s/b/c/g"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "cbb" {
		t.Errorf("buffer = %q, want %q", got, "cbb")
	}
}

func TestExecuteSubstituteReport(t *testing.T) {
	d, _ := newTestDispatcher(t, "a a\na a", 0)

	msg, err := d.ExecuteCommandLine("%s/a/b/g")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "4 substitutions on 2 lines" {
		t.Errorf("message = %q, want %q", msg, "4 substitutions on 2 lines")
	}
}

func TestExecuteGlobal(t *testing.T) {
	t.Run("delete matching", func(t *testing.T) {
		d, buf := newTestDispatcher(t, "one\ntwo\none\nthree", 0)
		if _, err := d.ExecuteCommandLine("g/one/d"); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "two\nthree" {
			t.Errorf("buffer = %q, want %q", got, "two\nthree")
		}
	})

	t.Run("inverted match", func(t *testing.T) {
		d, buf := newTestDispatcher(t, "one\ntwo\none\nthree", 0)
		if _, err := d.ExecuteCommandLine("g!/o/d"); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "one\ntwo\none" {
			t.Errorf("buffer = %q, want %q", got, "one\ntwo\none")
		}
	})

	t.Run("print is the default command", func(t *testing.T) {
		d, _ := newTestDispatcher(t, "one\ntwo\none", 0)
		msg, err := d.ExecuteCommandLine("g/one/")
		if err != nil {
			t.Fatal(err)
		}
		if msg != "one\none" {
			t.Errorf("output = %q, want %q", msg, "one\none")
		}
	})

	t.Run("substitute per matching line", func(t *testing.T) {
		d, buf := newTestDispatcher(t, "one\ntwo\none", 0)
		if _, err := d.ExecuteCommandLine("g/one/s/o/0/"); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "0ne\ntwo\n0ne" {
			t.Errorf("buffer = %q, want %q", got, "0ne\ntwo\n0ne")
		}
	})

	t.Run("no matches", func(t *testing.T) {
		d, _ := newTestDispatcher(t, "one", 0)
		if _, err := d.ExecuteCommandLine("g/xyz/d"); err == nil {
			t.Error("expected E486")
		}
	})
}

func TestExecuteNormal(t *testing.T) {
	d, buf := newTestDispatcher(t, "foo bar", 0)

	if _, err := d.ExecuteCommandLine("normal dw"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "bar" {
		t.Errorf("buffer = %q, want %q", got, "bar")
	}
}

func TestExecuteNormalRange(t *testing.T) {
	d, buf := newTestDispatcher(t, "ab\ncd", 0)

	if _, err := d.ExecuteCommandLine("%normal x"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\nd" {
		t.Errorf("buffer = %q, want %q", got, "b\nd")
	}
}

func TestExecuteNormalAbortsIncompleteInput(t *testing.T) {
	d, buf := newTestDispatcher(t, "foo", 0)

	if _, err := d.ExecuteCommandLine("normal d"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "foo" {
		t.Errorf("buffer = %q, want unchanged", got)
	}
	if d.Mode() != editor.ModeNormal {
		t.Errorf("mode = %v, want normal", d.Mode())
	}
}

func TestExecuteMark(t *testing.T) {
	d, buf := newTestDispatcher(t, "one\ntwo\nthree", 0)

	if _, err := d.ExecuteCommandLine("2mark a"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteCommandLine("'ad"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "one\nthree" {
		t.Errorf("buffer = %q, want %q", got, "one\nthree")
	}

	msg, err := d.ExecuteCommandLine("marks")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, " a ") {
		t.Errorf("marks output %q missing mark a", msg)
	}
}

func TestExecuteMarkBadName(t *testing.T) {
	d, _ := newTestDispatcher(t, "one", 0)

	if _, err := d.ExecuteCommandLine("mark 9"); err == nil {
		t.Error("expected E191 for a non-letter mark")
	}
}

func TestExecuteRegisters(t *testing.T) {
	d, _ := newTestDispatcher(t, "one\ntwo", 0)

	feedKeys(d, "yy")
	msg, err := d.ExecuteCommandLine("registers")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, `"0   one^J`) {
		t.Errorf("registers output %q missing yank register", msg)
	}
	if !strings.Contains(msg, fmt.Sprintf("  l  %s", `""`)) {
		t.Errorf("registers output %q missing unnamed register", msg)
	}
}

func TestExecuteHostCommands(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"w", []string{"write(,false)"}},
		{"w!", []string{"write(,true)"}},
		{"w out.txt", []string{"write(out.txt,false)"}},
		{"wq", []string{"write(,false)", "quit(false)"}},
		{"wa", []string{"writeall(false)"}},
		{"wqa!", []string{"writeall(true)", "quitall(true)"}},
		{"q", []string{"quit(false)"}},
		{"qa!", []string{"quitall(true)"}},
		{"n", []string{"next(false)"}},
		{"prev", []string{"prev(false)"}},
		{"wn", []string{"write(,false)", "next(false)"}},
		{"e other.txt", []string{"edit(other.txt,false)"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			host := &recordingHost{}
			buf := editor.NewLineBuffer("text")
			d := New(buf, nil, host)

			if _, err := d.ExecuteCommandLine(tt.line); err != nil {
				t.Fatal(err)
			}
			if len(host.calls) != len(tt.want) {
				t.Fatalf("calls = %v, want %v", host.calls, tt.want)
			}
			for i := range tt.want {
				if host.calls[i] != tt.want[i] {
					t.Errorf("call %d = %q, want %q", i, host.calls[i], tt.want[i])
				}
			}
		})
	}
}

type recordingHost struct {
	calls []string
}

func (h *recordingHost) record(format string, args ...any) error {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
	return nil
}

func (h *recordingHost) Write(name string, force bool) error {
	return h.record("write(%s,%v)", name, force)
}
func (h *recordingHost) WriteAll(force bool) error { return h.record("writeall(%v)", force) }
func (h *recordingHost) Quit(force bool) error     { return h.record("quit(%v)", force) }
func (h *recordingHost) QuitAll(force bool) error  { return h.record("quitall(%v)", force) }
func (h *recordingHost) NextFile(force bool) error { return h.record("next(%v)", force) }
func (h *recordingHost) PrevFile(force bool) error { return h.record("prev(%v)", force) }
func (h *recordingHost) Edit(name string, force bool) error {
	return h.record("edit(%s,%v)", name, force)
}
