package game

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var cellRunes = map[Cell]byte{Empty: '.', Black: 'X', White: 'O'}

// String renders the board one row per line, followed by the side to move.
func (s State) String() string {
	if s.rays.IsZero() {
		return "<no position>"
	}
	var buf strings.Builder
	w := s.rays.Width()
	buf.WriteString("  ")
	for c := 0; c < w; c++ {
		buf.WriteByte(byte('a' + c))
	}
	buf.WriteByte('\n')
	for i, c := range s.board {
		if i%w == 0 {
			row := strconv.Itoa(i/w + 1)
			buf.WriteString(row)
			if len(row) < 2 {
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte(cellRunes[c])
		if i%w == w-1 {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("to move: ")
	buf.WriteString(s.turn.String())
	return buf.String()
}

// ParseBoard reads a board written with X (Black), O (White) and . (Empty).
// Whitespace is ignored.
func ParseBoard(rays RayTable, text string, turn Cell) (State, error) {
	var board Board
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
		case r == 'X' || r == 'x':
			board = append(board, Black)
		case r == 'O' || r == 'o':
			board = append(board, White)
		case r == '.':
			board = append(board, Empty)
		default:
			return State{}, errors.Errorf("unexpected character %q in board", r)
		}
	}
	return NewState(rays, board, turn)
}

// MoveToCoord converts a cell index to algebraic notation ("d3").
func MoveToCoord(move, width int) string {
	return string(rune('a'+move%width)) + strconv.Itoa(move/width+1)
}

// ParseMove converts algebraic notation ("d3") into a cell index.
func ParseMove(s string, rays RayTable) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, errors.Errorf("move %q is too short", s)
	}
	col := int(s[0] - 'a')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, errors.Wrapf(err, "bad row in move %q", s)
	}
	row--
	if col < 0 || col >= rays.Width() || row < 0 || row >= rays.Height() {
		return 0, errors.Errorf("move %q is off the board", s)
	}
	return row*rays.Width() + col, nil
}
