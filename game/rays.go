package game

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// directions are the eight compass offsets as (row, col) deltas.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Standard is the ray table of the 8x8 board.
var Standard = MustRayTable(RowNum, ColNum)

// RayTable holds, for every cell of a board, the rays radiating from it.
// It is computed once and shared read-only by every State built on it.
type RayTable struct {
	width, height int
	rays          [][][]int
}

// NewRayTable derives the rays of a width x height board.
func NewRayTable(width, height int) (RayTable, error) {
	if width < 1 || height < 1 {
		return RayTable{}, errors.Errorf("invalid board geometry %dx%d", width, height)
	}
	size := width * height
	rays := make([][][]int, size)
	for i := 0; i < size; i++ {
		row, col := i/width, i%width
		for _, d := range directions {
			var ray []int
			for r, c := row+d[0], col+d[1]; r >= 0 && r < height && c >= 0 && c < width; r, c = r+d[0], c+d[1] {
				ray = append(ray, r*width+c)
			}
			if len(ray) > 0 {
				rays[i] = append(rays[i], ray)
			}
		}
	}
	return NewRayTableFromRays(width, height, rays)
}

// NewRayTableFromRays validates an externally supplied table. Every problem
// found is reported, not only the first.
func NewRayTableFromRays(width, height int, rays [][][]int) (RayTable, error) {
	if width < 1 || height < 1 {
		return RayTable{}, errors.Errorf("invalid board geometry %dx%d", width, height)
	}
	size := width * height
	var errs error
	if len(rays) != size {
		errs = multierror.Append(errs, fmt.Errorf("table has %d entries, board has %d cells", len(rays), size))
	}
	for origin, cell := range rays {
		for d, ray := range cell {
			if len(ray) == 0 {
				errs = multierror.Append(errs, fmt.Errorf("cell %d ray %d is empty", origin, d))
			}
			for _, idx := range ray {
				if idx < 0 || idx >= size {
					errs = multierror.Append(errs, fmt.Errorf("cell %d ray %d references out of range cell %d", origin, d, idx))
				} else if idx == origin {
					errs = multierror.Append(errs, fmt.Errorf("cell %d ray %d references its origin", origin, d))
				}
			}
		}
	}
	if errs != nil {
		return RayTable{}, errors.Wrap(errs, "malformed ray table")
	}
	// the caller keeps its slices, the table gets its own
	owned := make([][][]int, len(rays))
	for i, cell := range rays {
		owned[i] = make([][]int, len(cell))
		for d, ray := range cell {
			owned[i][d] = append([]int(nil), ray...)
		}
	}
	return RayTable{width: width, height: height, rays: owned}, nil
}

// MustRayTable is like NewRayTable but panics on error. A bad table is a
// programming error and must surface before any position is processed.
func MustRayTable(width, height int) RayTable {
	t, err := NewRayTable(width, height)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return t
}

func (t RayTable) Size() int   { return t.width * t.height }
func (t RayTable) Width() int  { return t.width }
func (t RayTable) Height() int { return t.height }

// Rays returns the rays starting at cell i. The result must not be modified.
func (t RayTable) Rays(i int) [][]int { return t.rays[i] }

// IsZero reports whether the table was never initialised.
func (t RayTable) IsZero() bool { return t.rays == nil }
