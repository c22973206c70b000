package broadphase

import (
	"encoding/binary"
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

// ErrInvalidCellSize is returned for a non-positive or non-finite cell size.
var ErrInvalidCellSize = errors.New("broadphase: cell size must be positive")

// MaxCellsPerBody bounds how many cells one body may occupy. Larger bodies
// are kept aside and paired with every other body.
const MaxCellsPerBody = 4096

// Pair holds two body indices with I < J.
type Pair struct {
	I, J int
}

// Grid buckets bodies into cubic cells of edge CellSize.
type Grid struct {
	CellSize float32

	cells     map[uint64][]int
	oversized []int
	count     int
}

// NewGrid creates an empty grid.
func NewGrid(cellSize float32) (*Grid, error) {
	if !(cellSize > 0) || gomath.IsInf(float64(cellSize), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &Grid{CellSize: cellSize, cells: make(map[uint64][]int)}, nil
}

// cellKey hashes integer cell coordinates. Distinct cells may collide; the
// narrow phase filters the resulting extra pairs.
func cellKey(x, y, z int32) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:], uint32(y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(z))
	return xxhash.Sum64(buf[:])
}

// cellCoord returns the cell index along one axis. ok is false when the
// index does not fit in int32.
func (g *Grid) cellCoord(f float32) (c int64, ok bool) {
	v := gomath.Floor(float64(f) / float64(g.CellSize))
	if !(v >= gomath.MinInt32 && v <= gomath.MaxInt32) {
		return 0, false
	}
	return int64(v), true
}

// cellRange returns the first and last cell covering [lo, hi] on one axis.
// ok is false when the range leaves int32 or spans more than MaxCellsPerBody.
func (g *Grid) cellRange(lo, hi float32) (c0, c1 int64, ok bool) {
	c0, ok0 := g.cellCoord(lo)
	c1, ok1 := g.cellCoord(hi)
	if !ok0 || !ok1 || c1 < c0 || c1-c0+1 > MaxCellsPerBody {
		return 0, 0, false
	}
	return c0, c1, true
}

// Insert adds the body with index idx covering box. Bodies covering more
// than MaxCellsPerBody cells, or lying outside the addressable cell range,
// are kept in the oversized list.
func (g *Grid) Insert(idx int, box math.AABB) {
	g.count++
	lo, hi := box.MinExtents(), box.MaxExtents()
	x0, x1, okX := g.cellRange(lo.X, hi.X)
	y0, y1, okY := g.cellRange(lo.Y, hi.Y)
	z0, z1, okZ := g.cellRange(lo.Z, hi.Z)
	if !okX || !okY || !okZ || (x1-x0+1)*(y1-y0+1)*(z1-z0+1) > MaxCellsPerBody {
		g.oversized = append(g.oversized, idx)
		return
	}

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				k := cellKey(int32(x), int32(y), int32(z))
				g.cells[k] = append(g.cells[k], idx)
			}
		}
	}
}

// Len returns the number of inserted bodies.
func (g *Grid) Len() int { return g.count }

// Candidates returns every unique pair of bodies sharing at least one cell,
// plus every pair involving an oversized body. Pairs are sorted by (I, J).
func (g *Grid) Candidates() []Pair {
	seen := make(map[Pair]struct{})
	add := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		seen[Pair{a, b}] = struct{}{}
	}

	for _, bucket := range g.cells {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				add(bucket[i], bucket[j])
			}
		}
	}

	if len(g.oversized) > 0 {
		members := make(map[int]struct{})
		for _, bucket := range g.cells {
			for _, idx := range bucket {
				members[idx] = struct{}{}
			}
		}
		for _, idx := range g.oversized {
			members[idx] = struct{}{}
		}
		for _, big := range g.oversized {
			for other := range members {
				add(big, other)
			}
		}
	}

	pairs := make([]Pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
	return pairs
}
