package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	m, err := ParseMove("d3", Standard)
	require.NoError(t, err)
	assert.Equal(t, 19, m)
	assert.Equal(t, "d3", MoveToCoord(19, Standard.Width()))
	assert.Equal(t, "h8", MoveToCoord(63, Standard.Width()))

	for _, bad := range []string{"", "z1", "a9", "a0", "b"} {
		_, err := ParseMove(bad, Standard)
		assert.Error(t, err, bad)
	}
}

func TestBoardText(t *testing.T) {
	s := Initial(Standard)
	out := s.String()
	assert.True(t, strings.HasPrefix(out, "  abcdefgh\n"))
	assert.Contains(t, out, "4 ...OX...\n")
	assert.Contains(t, out, "5 ...XO...\n")
	assert.True(t, strings.HasSuffix(out, "to move: Black"))

	parsed, err := ParseBoard(Standard, passBoard, White)
	require.NoError(t, err)
	assert.Equal(t, Black, parsed.Turn(), "white has no move and passes")
	assert.Equal(t, 2, parsed.Count(Black))

	_, err = ParseBoard(Standard, "XO?", Black)
	assert.Error(t, err)

	assert.Equal(t, "<no position>", State{}.String())
}
