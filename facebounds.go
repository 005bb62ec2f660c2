package s2tilejson

import (
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// ZoomBounds maps a zoom level to the tile index range touched at that zoom.
// Entries are created lazily on first use.
type ZoomBounds map[uint8]TileBounds

// WMBounds tracks web mercator tile ranges per zoom.
type WMBounds = ZoomBounds

// Extend widens the zoom's entry to include tile (x, y), creating it from the
// inverted sentinel when absent.
func (z ZoomBounds) Extend(zoom uint8, x, y uint64) {
	b, ok := z[zoom]
	if !ok {
		b = NewTileAccumulator()
	}
	b.ExtendPoint(x, y)
	z[zoom] = b
}

// Union widens every entry of z to cover o.
func (z ZoomBounds) Union(o ZoomBounds) {
	for zoom, ob := range o {
		b, ok := z[zoom]
		if !ok {
			z[zoom] = ob
			continue
		}
		b.Extend(ob)
		z[zoom] = b
	}
}

// Zooms lists the populated zoom levels in ascending order.
func (z ZoomBounds) Zooms() []uint8 {
	out := make([]uint8, 0, len(z))
	for k := range z {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (z ZoomBounds) clone() ZoomBounds {
	out := make(ZoomBounds, len(z))
	for k, v := range z {
		out[k] = v
	}
	return out
}

// MarshalJSON emits zoom keys in numeric order.
func (z ZoomBounds) MarshalJSON() ([]byte, error) {
	zooms := z.Zooms()
	keys := make([]string, len(zooms))
	for i, zoom := range zooms {
		keys[i] = strconv.Itoa(int(zoom))
	}
	return marshalIndexed(keys, func(i int) ([]byte, error) {
		return z[zooms[i]].MarshalJSON()
	})
}

func (z *ZoomBounds) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected object keyed by zoom")
	}
	out := make(ZoomBounds, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseUint(k, 10, 8)
		if err != nil {
			return singleIssue("/"+escapePointer(k), CodeInvalidType, "zoom key must be a numeral 0..255")
		}
		var tb TileBounds
		if err := tb.UnmarshalJSON(v); err != nil {
			return prefixIssues(err, "/"+k)
		}
		out[uint8(n)] = tb
	}
	*z = out
	return nil
}

// FaceBounds holds per-zoom tile ranges for each of the six faces.
type FaceBounds [FaceCount]ZoomBounds

// Get returns the per-zoom bounds of a face; the result may be nil.
func (f *FaceBounds) Get(face Face) ZoomBounds {
	if !face.Valid() {
		return nil
	}
	return f[face]
}

// Entry returns the per-zoom bounds of a face, creating the map when absent.
func (f *FaceBounds) Entry(face Face) ZoomBounds {
	if f[face] == nil {
		f[face] = ZoomBounds{}
	}
	return f[face]
}

// Union widens every face of f to cover o.
func (f *FaceBounds) Union(o FaceBounds) {
	for i, zb := range o {
		if len(zb) == 0 {
			continue
		}
		f.Entry(Face(i)).Union(zb)
	}
}

func (f FaceBounds) clone() FaceBounds {
	var out FaceBounds
	for i, zb := range f {
		if zb != nil {
			out[i] = zb.clone()
		}
	}
	return out
}

// MarshalJSON writes an object keyed "0".."5"; every face is present.
func (f FaceBounds) MarshalJSON() ([]byte, error) {
	keys := []string{"0", "1", "2", "3", "4", "5"}
	return marshalIndexed(keys, func(i int) ([]byte, error) {
		zb := f[i]
		if zb == nil {
			zb = ZoomBounds{}
		}
		return zb.MarshalJSON()
	})
}

func (f *FaceBounds) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected object keyed by face")
	}
	var out FaceBounds
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || n >= FaceCount {
			return AppendIssues(nil, newIssue("/"+escapePointer(k), CodeUnknownVariant, "unknown Face variant: "+k, map[string]any{"kind": "Face", "got": k}))
		}
		var zb ZoomBounds
		if err := zb.UnmarshalJSON(v); err != nil {
			return prefixIssues(err, "/"+k)
		}
		out[n] = zb
	}
	*f = out
	return nil
}
