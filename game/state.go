package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Cell is the content of a board square. Black and White double as the two
// sides; None marks a finished game when used as the side to move.
type Cell int8

const (
	White Cell = -1
	Empty Cell = 0
	Black Cell = 1

	None = Empty
)

const (
	RowNum = 8
	ColNum = 8

	// NoMove is the LastMove of a position that was not produced by Apply.
	NoMove = -1
)

// Opponent returns the other side. Empty stays Empty.
func (c Cell) Opponent() Cell { return -c }

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

func (c Cell) isValid() bool { return c >= White && c <= Black }

// Board is the row-major content of every cell.
type Board []Cell

// State is a board plus the side to move. A State is never modified once
// built: Apply returns a new one.
type State struct {
	board Board
	rays  RayTable
	turn  Cell
	last  int
}

// NewState builds a position from an externally supplied board. The board is
// copied.
//
// A side to move without a legal move passes to the opponent, and the game is
// over when neither side can move. None is only accepted for such finished
// boards.
func NewState(rays RayTable, board Board, turn Cell) (State, error) {
	if rays.IsZero() {
		return State{}, errors.New("ray table is not initialised")
	}
	if len(board) != rays.Size() {
		return State{}, errors.Errorf("board has %d cells, expected %d", len(board), rays.Size())
	}
	for i, c := range board {
		if !c.isValid() {
			return State{}, errors.Errorf("cell %d holds invalid value %d", i, c)
		}
	}
	if !turn.isValid() {
		return State{}, errors.Errorf("invalid side to move %d", turn)
	}
	b := make(Board, len(board))
	copy(b, board)
	retVal := State{board: b, rays: rays, turn: None, last: NoMove}

	if turn == None {
		if retVal.hasLegalMoveFor(Black) || retVal.hasLegalMoveFor(White) {
			return State{}, errors.New("board marked as finished but a move is still possible")
		}
		return retVal, nil
	}
	return retVal.settle(turn), nil
}

// Initial returns the standard starting position for the table's geometry,
// Black to move unless the board is too small to play. The board must be at
// least 2x2.
func Initial(rays RayTable) State {
	w, h := rays.Width(), rays.Height()
	if w < 2 || h < 2 {
		panic(fmt.Sprintf("no starting position on a %dx%d board", w, h))
	}
	b := make(Board, rays.Size())
	r, c := h/2-1, w/2-1
	b[r*w+c] = White
	b[r*w+c+1] = Black
	b[(r+1)*w+c] = Black
	b[(r+1)*w+c+1] = White
	return State{board: b, rays: rays, last: NoMove}.settle(Black)
}

func (s State) Turn() Cell       { return s.turn }
func (s State) IsTerminal() bool { return s.turn == None }
func (s State) Size() int        { return len(s.board) }
func (s State) At(i int) Cell    { return s.board[i] }
func (s State) Rays() RayTable   { return s.rays }

// LastMove is the cell played to reach this state, or NoMove.
func (s State) LastMove() int { return s.last }

// Board returns a copy of the cells.
func (s State) Board() Board {
	b := make(Board, len(s.board))
	copy(b, s.board)
	return b
}

// Count returns the number of cells holding side.
func (s State) Count(side Cell) (n int) {
	for _, c := range s.board {
		if c == side {
			n++
		}
	}
	return
}

func (s State) CountEmpty() int { return s.Count(Empty) }

// Winner returns the side with more discs. A tie goes to Black: there are no
// draws.
func (s State) Winner() Cell {
	if s.Count(Black) >= s.Count(White) {
		return Black
	}
	return White
}

// flipRun returns the discs along ray that side would flip: the leading run of
// opponent discs, provided the cell right after it is not empty.
func (s State) flipRun(side Cell, ray []int) []int {
	opp := side.Opponent()
	n := 0
	for n < len(ray) && s.board[ray[n]] == opp {
		n++
	}
	if n == 0 || n == len(ray) || s.board[ray[n]] == Empty {
		return nil
	}
	return ray[:n]
}

func (s State) canPlayFor(side Cell, i int) bool {
	if side == None || i < 0 || i >= len(s.board) || s.board[i] != Empty {
		return false
	}
	for _, ray := range s.rays.Rays(i) {
		if len(s.flipRun(side, ray)) > 0 {
			return true
		}
	}
	return false
}

func (s State) hasLegalMoveFor(side Cell) bool {
	for i := range s.board {
		if s.canPlayFor(side, i) {
			return true
		}
	}
	return false
}

// CanPlayAt reports whether the side to move may play cell i.
func (s State) CanPlayAt(i int) bool { return s.canPlayFor(s.turn, i) }

// HasLegalMove reports whether the side to move has any legal move.
func (s State) HasLegalMove() bool { return s.hasLegalMoveFor(s.turn) }

// LegalMoves lists the playable cells in increasing order.
func (s State) LegalMoves() []int {
	var moves []int
	for i := range s.board {
		if s.CanPlayAt(i) {
			moves = append(moves, i)
		}
	}
	return moves
}

// Apply plays move for the side to move. It returns false when the cell is
// occupied or nothing would be flipped.
func (s State) Apply(move int) (State, bool) {
	if s.turn == None || move < 0 || move >= len(s.board) || s.board[move] != Empty {
		return State{}, false
	}
	var runs [][]int
	for _, ray := range s.rays.Rays(move) {
		if run := s.flipRun(s.turn, ray); len(run) > 0 {
			runs = append(runs, run)
		}
	}
	if len(runs) == 0 {
		return State{}, false
	}

	board := make(Board, len(s.board))
	copy(board, s.board)
	board[move] = s.turn
	for _, run := range runs {
		for _, i := range run {
			board[i] = s.turn
		}
	}

	next := State{board: board, rays: s.rays, last: move}
	return next.settle(s.turn.Opponent()), true
}

// settle hands the move to first if it can play, else to its opponent. The
// game is over when neither can.
func (s State) settle(first Cell) State {
	s.turn = None
	for _, side := range [2]Cell{first, first.Opponent()} {
		if s.hasLegalMoveFor(side) {
			s.turn = side
			break
		}
	}
	return s
}

// Successors returns a single-pass iterator over every state reachable in one
// move, by increasing move index.
func (s State) Successors() *Successors { return &Successors{from: s} }

// NextStates collects Successors.
func (s State) NextStates() []State {
	var retVal []State
	it := s.Successors()
	for next, ok := it.Next(); ok; next, ok = it.Next() {
		retVal = append(retVal, next)
	}
	return retVal
}

// Successors lazily applies each candidate move of a state in turn.
type Successors struct {
	from State
	next int
}

// Next returns the following legal successor, or false once exhausted.
func (it *Successors) Next() (State, bool) {
	for it.next < len(it.from.board) {
		move := it.next
		it.next++
		if st, ok := it.from.Apply(move); ok {
			return st, true
		}
	}
	return State{}, false
}
