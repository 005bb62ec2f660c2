package s2tilejson_test

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"

	"github.com/open-s2/s2tilejson"
)

func TestBBox_SerializesAsArray(t *testing.T) {
	b := s2tilejson.LonLatBounds{Left: -60, Bottom: -20, Right: 5, Top: 60}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[-60,-20,5,60]` {
		t.Fatalf("got %s", out)
	}
	var back s2tilejson.LonLatBounds
	if err := back.UnmarshalJSON(out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != b {
		t.Fatalf("round trip: %+v != %+v", back, b)
	}
}

func TestBBox_TileRoundTrip(t *testing.T) {
	b := s2tilejson.TileBounds{Left: 22, Bottom: 37, Right: 1 << 40, Top: 1 << 41}
	out, _ := json.Marshal(b)
	var back s2tilejson.TileBounds
	if err := back.UnmarshalJSON(out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != b {
		t.Fatalf("round trip: %+v != %+v", back, b)
	}
}

func TestBBox_InvalidLength(t *testing.T) {
	cases := []struct {
		in    string
		index int
	}{
		{`[]`, 0},
		{`[1,2]`, 2},
		{`[1,2,3]`, 3},
		{`[1,2,3,4,5]`, 4},
	}
	for _, c := range cases {
		var b s2tilejson.TileBounds
		err := b.UnmarshalJSON([]byte(c.in))
		if !s2tilejson.HasCode(err, s2tilejson.CodeInvalidLength) {
			t.Fatalf("%s: expected invalid_length, got %v", c.in, err)
		}
		iss, _ := s2tilejson.AsIssues(err)
		if iss[0].Params["index"] != c.index {
			t.Fatalf("%s: index %v want %d", c.in, iss[0].Params["index"], c.index)
		}
	}
}

func TestBBox_Accumulators(t *testing.T) {
	ll := s2tilejson.NewLonLatAccumulator()
	if !ll.Empty() || !math.IsInf(ll.Left, 1) {
		t.Fatalf("lon/lat accumulator should start inverted")
	}
	ll.Extend(s2tilejson.LonLatBounds{Left: 1, Bottom: 2, Right: 3, Top: 4})
	if ll != (s2tilejson.LonLatBounds{Left: 1, Bottom: 2, Right: 3, Top: 4}) {
		t.Fatalf("first extend must win: %+v", ll)
	}
	tb := s2tilejson.NewTileAccumulator()
	tb.ExtendPoint(7, 9)
	if tb != (s2tilejson.TileBounds{Left: 7, Bottom: 9, Right: 7, Top: 9}) {
		t.Fatalf("tile accumulator: %+v", tb)
	}
}

func TestBBox_Orb(t *testing.T) {
	b := s2tilejson.LonLatBounds{Left: -10, Bottom: -5, Right: 10, Top: 5}
	ob := s2tilejson.OrbBound(b)
	if ob.Min != (orb.Point{-10, -5}) || ob.Max != (orb.Point{10, 5}) {
		t.Fatalf("orb bound: %+v", ob)
	}
	if s2tilejson.LonLatBoundsFromOrb(ob) != b {
		t.Fatalf("orb round trip")
	}
}
