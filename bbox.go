package s2tilejson

import (
	"math"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
)

// Number is the set of coordinate types a BBox may carry.
type Number interface {
	~float64 | ~uint64
}

// BBox is a bounding box over tile indices or geographic coordinates. It is
// serialized as the flat sequence [left, bottom, right, top].
type BBox[T Number] struct {
	Left   T
	Bottom T
	Right  T
	Top    T
}

// LonLatBounds holds longitude/latitude extents.
type LonLatBounds = BBox[float64]

// TileBounds holds the tile index range of one zoom level.
type TileBounds = BBox[uint64]

// NewLonLatAccumulator returns inverted infinite bounds so that the first
// Extend accepts any real value unconditionally.
func NewLonLatAccumulator() LonLatBounds {
	return LonLatBounds{
		Left:   math.Inf(1),
		Bottom: math.Inf(1),
		Right:  math.Inf(-1),
		Top:    math.Inf(-1),
	}
}

// NewTileAccumulator returns inverted tile bounds (max for left/bottom, zero
// for right/top).
func NewTileAccumulator() TileBounds {
	return TileBounds{Left: math.MaxUint64, Bottom: math.MaxUint64}
}

// Empty reports whether the box is still inverted (nothing accumulated).
func (b BBox[T]) Empty() bool { return b.Left > b.Right || b.Bottom > b.Top }

// ExtendPoint widens the box to contain (x, y).
func (b *BBox[T]) ExtendPoint(x, y T) {
	b.Left = min(b.Left, x)
	b.Bottom = min(b.Bottom, y)
	b.Right = max(b.Right, x)
	b.Top = max(b.Top, y)
}

// Extend widens the box elementwise to contain o.
func (b *BBox[T]) Extend(o BBox[T]) {
	b.Left = min(b.Left, o.Left)
	b.Bottom = min(b.Bottom, o.Bottom)
	b.Right = max(b.Right, o.Right)
	b.Top = max(b.Top, o.Top)
}

// Array returns the box as [left, bottom, right, top].
func (b BBox[T]) Array() [4]T { return [4]T{b.Left, b.Bottom, b.Right, b.Top} }

func (b BBox[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Array())
}

// UnmarshalJSON requires exactly four elements; a short sequence fails with an
// invalid_length issue naming the first missing index.
func (b *BBox[T]) UnmarshalJSON(data []byte) error {
	var raw []T
	if err := json.Unmarshal(data, &raw); err != nil {
		return toIssues(err)
	}
	if len(raw) != 4 {
		return invalidLength(min(len(raw), 4), len(raw))
	}
	*b = BBox[T]{Left: raw[0], Bottom: raw[1], Right: raw[2], Top: raw[3]}
	return nil
}

// OrbBound converts geographic bounds into an orb.Bound.
func OrbBound(b LonLatBounds) orb.Bound {
	return orb.Bound{Min: orb.Point{b.Left, b.Bottom}, Max: orb.Point{b.Right, b.Top}}
}

// LonLatBoundsFromOrb converts an orb.Bound into geographic bounds.
func LonLatBoundsFromOrb(b orb.Bound) LonLatBounds {
	return LonLatBounds{Left: b.Min.Lon(), Bottom: b.Min.Lat(), Right: b.Max.Lon(), Top: b.Max.Lat()}
}
