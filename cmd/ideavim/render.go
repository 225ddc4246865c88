package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/duhaesbaert/ideavim/internal/editor"
)

var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleGutter  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleVisual  = tcell.StyleDefault.Reverse(true)
)

// draw renders the buffer, gutter, and status line.
func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	textRows := height - 1

	acc := a.opts.Accessor(a.buf)
	caret := a.buf.Caret()
	caretLine := a.buf.LineOf(caret.Offset)

	a.scrollTo(caretLine, textRows, acc.Int("scrolloff"))

	gutter := 0
	number := acc.Bool("number")
	relative := acc.Bool("relativenumber")
	if number || relative {
		gutter = numberWidth(a.buf.LineCount()) + 1
	}

	tabstop := acc.Int("tabstop")
	if tabstop <= 0 {
		tabstop = 8
	}

	selection, hasSelection := a.disp.VisualRange()

	caretX, caretY := gutter, 0
	for row := 0; row < textRows; row++ {
		line := a.top + row
		if line >= a.buf.LineCount() {
			a.screen.SetContent(0, row, '~', nil, styleGutter)
			continue
		}
		if gutter > 0 {
			a.drawLineNumber(row, line, caretLine, gutter, number, relative)
		}

		x := gutter
		start, end := a.buf.LineStart(line), a.buf.LineEnd(line)
		for off := start; off < end && x < width; off++ {
			ch := a.buf.CharAt(off)
			style := styleDefault
			if hasSelection && off >= selection.Start && off < selection.End {
				style = styleVisual
			}
			if off == caret.Offset {
				caretX, caretY = x, row
			}
			if ch == '\t' {
				next := gutter + ((x-gutter)/tabstop+1)*tabstop
				for ; x < next && x < width; x++ {
					a.screen.SetContent(x, row, ' ', nil, style)
				}
				continue
			}
			a.screen.SetContent(x, row, ch, nil, style)
			x += runewidth.RuneWidth(ch)
		}
		if caret.Offset >= end && line == caretLine {
			caretX, caretY = x, row
		}
	}

	a.drawStatusLine(width, height-1, caret)

	if a.inCmd {
		a.screen.ShowCursor(1+len(a.cmdline), height-1)
	} else {
		a.screen.ShowCursor(caretX, caretY)
	}
	a.screen.Show()
}

// scrollTo keeps the caret line inside the viewport with scrolloff
// margin lines of context.
func (a *App) scrollTo(caretLine, textRows, scrolloff int) {
	if textRows <= 0 {
		return
	}
	if scrolloff > textRows/2 {
		scrolloff = textRows / 2
	}
	if caretLine < a.top+scrolloff {
		a.top = caretLine - scrolloff
	}
	if caretLine >= a.top+textRows-scrolloff {
		a.top = caretLine - textRows + 1 + scrolloff
	}
	if a.top > a.buf.LineCount()-textRows {
		a.top = a.buf.LineCount() - textRows
	}
	if a.top < 0 {
		a.top = 0
	}
}

func (a *App) drawLineNumber(row, line, caretLine, gutter int, number, relative bool) {
	n := line + 1
	if relative && line != caretLine {
		n = line - caretLine
		if n < 0 {
			n = -n
		}
	}
	label := fmt.Sprintf("%*d ", gutter-1, n)
	for i, ch := range label {
		a.screen.SetContent(i, row, ch, nil, styleGutter)
	}
}

func (a *App) drawStatusLine(width, row int, caret editor.Caret) {
	left := a.statusText()
	position := fmt.Sprintf("%d,%d", a.buf.LineOf(caret.Offset)+1, caret.Point.Col+1)
	right := a.disp.Pending()
	if right != "" {
		right += "  "
	}
	right += position

	x := 0
	for _, ch := range left {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, ch, nil, styleStatus)
		x += runewidth.RuneWidth(ch)
	}
	for ; x < width-len(right)-1; x++ {
		a.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
	for _, ch := range right {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, ch, nil, styleStatus)
		x += runewidth.RuneWidth(ch)
	}
}

// statusText picks the left-hand status content: the command line
// being typed, the mode banner, or the last command's message.
func (a *App) statusText() string {
	if a.inCmd {
		return ":" + string(a.cmdline)
	}
	if a.opts.Accessor(a.buf).Bool("showmode") {
		if banner := a.disp.Mode().DisplayName(); banner != "" {
			return banner
		}
	}
	if status := a.disp.Status(); status != "" {
		// Multi-line output (":print", ":registers") collapses to its
		// last line on the status bar.
		if i := strings.LastIndexByte(status, '\n'); i >= 0 {
			return status[i+1:]
		}
		return status
	}
	if path := a.currentPath(); path != "" {
		name := path
		if a.modified() {
			name += " [+]"
		}
		return name
	}
	return "[No Name]"
}

// numberWidth is the gutter digit count for the given line total.
func numberWidth(lines int) int {
	w := 1
	for lines >= 10 {
		lines /= 10
		w++
	}
	if w < 3 {
		w = 3
	}
	return w
}
