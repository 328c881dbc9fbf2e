//go:build unix

package ptyshell

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// screen is a minimal virtual terminal. It understands the subset of
// sequences emitted by a bubbletea renderer: cursor movement, erase in
// display and line, alternate screen switches and SGR styling, which it
// discards. Cells are bytes; any non-ASCII rune occupies a single '*'.
type screen struct {
	rows [][]byte
	row  int
	col  int
}

const (
	screenRows = 24
	screenCols = 80
)

func newScreen() *screen {
	s := &screen{rows: make([][]byte, screenRows)}
	for i := range s.rows {
		s.rows[i] = blankRow(screenCols)
	}
	return s
}

func blankRow(n int) []byte {
	row := make([]byte, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// parseScreen replays buffer onto a fresh screen and returns its rows with
// trailing spaces trimmed.
func parseScreen(buffer string) []string {
	s := newScreen()
	s.write(buffer)
	return s.lines()
}

func (s *screen) lines() []string {
	out := make([]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

func (s *screen) write(buffer string) {
	for i := 0; i < len(buffer); {
		c := buffer[i]
		switch {
		case c == '\x1b':
			i = s.escape(buffer, i+1)
		case c == '\r':
			s.col = 0
			i++
		case c == '\n':
			s.row++
			s.col = 0
			i++
		case c == '\t':
			s.col = (s.col/8 + 1) * 8
			i++
		case c == '\b':
			if s.col > 0 {
				s.col--
			}
			i++
		case c >= 32 && c < 127:
			s.put(c)
			i++
		case c >= 0x80:
			r, size := utf8.DecodeRuneInString(buffer[i:])
			if r != utf8.RuneError {
				s.put('*')
			}
			i += size
		default:
			i++
		}
	}
}

// escape handles the sequence whose ESC is at i-1 and returns the index
// after it.
func (s *screen) escape(buffer string, i int) int {
	if i >= len(buffer) {
		return i
	}
	switch buffer[i] {
	case '[':
		return s.csi(buffer, i+1)
	case ']':
		// OSC, terminated by BEL or ST
		for i++; i < len(buffer); i++ {
			if buffer[i] == '\x07' {
				return i + 1
			}
			if buffer[i] == '\x1b' && i+1 < len(buffer) && buffer[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		return i + 2
	default:
		return i + 1
	}
}

func (s *screen) csi(buffer string, i int) int {
	start := i
	for i < len(buffer) && buffer[i] >= 0x30 && buffer[i] <= 0x3f {
		i++
	}
	params := buffer[start:i]
	for i < len(buffer) && buffer[i] >= 0x20 && buffer[i] <= 0x2f {
		i++
	}
	if i >= len(buffer) {
		return i
	}
	cmd := buffer[i]
	i++

	switch cmd {
	case 'H', 'f':
		row, col, _ := strings.Cut(params, ";")
		s.row = max(0, atoiDefault(row, 1)-1)
		s.col = max(0, atoiDefault(col, 1)-1)
	case 'J':
		s.eraseDisplay(atoiDefault(params, 0))
	case 'K':
		s.eraseLine(atoiDefault(params, 0))
	case 'A':
		s.row = max(0, s.row-atoiDefault(params, 1))
	case 'B':
		s.row += atoiDefault(params, 1)
	case 'C':
		s.col += atoiDefault(params, 1)
	case 'D':
		s.col = max(0, s.col-atoiDefault(params, 1))
	case 'G':
		s.col = max(0, atoiDefault(params, 1)-1)
	case 'h':
		switch params {
		case "?1049", "?1047", "?47":
			s.eraseDisplay(2)
			s.row, s.col = 0, 0
		}
	}
	return i
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if s == "0" {
		return 0
	}
	return def
}

func (s *screen) grow() {
	for s.row >= len(s.rows) {
		s.rows = append(s.rows, blankRow(screenCols))
	}
}

func (s *screen) put(c byte) {
	s.grow()
	for s.col >= len(s.rows[s.row]) {
		s.rows[s.row] = append(s.rows[s.row], ' ')
	}
	s.rows[s.row][s.col] = c
	s.col++
}

func (s *screen) eraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseLine(0)
		for r := s.row + 1; r < len(s.rows); r++ {
			clearBytes(s.rows[r])
		}
	case 1:
		for r := 0; r < s.row && r < len(s.rows); r++ {
			clearBytes(s.rows[r])
		}
		s.eraseLine(1)
	case 2, 3:
		for _, row := range s.rows {
			clearBytes(row)
		}
	}
}

func (s *screen) eraseLine(mode int) {
	if s.row >= len(s.rows) {
		return
	}
	row := s.rows[s.row]
	switch mode {
	case 0:
		if s.col < len(row) {
			clearBytes(row[s.col:])
		}
	case 1:
		clearBytes(row[:min(s.col+1, len(row))])
	case 2:
		clearBytes(row)
	}
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = ' '
	}
}

// lastLineWithPrefix returns the bottom-most row that starts with prefix.
func lastLineWithPrefix(lines []string, prefix string) (string, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			return lines[i], true
		}
	}
	return "", false
}
