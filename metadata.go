package s2tilejson

import (
	"github.com/goccy/go-json"
)

// Defaults applied to every metadata document.
const (
	DefaultSpecVersion = "1.0.0"
	DefaultVersion     = "1.0.0"
	DefaultName        = "default"
	DefaultDescription = "Built with s2maps-cli"
	DefaultExtension   = "pbf"
	DefaultMinZoom     = 0
	DefaultMaxZoom     = 27
)

// Center is where the data lives; it is derived at commit time.
type Center struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Zoom uint8   `json:"zoom"`
}

// Attributions maps a human readable name to its link.
type Attributions map[string]string

// Metadata is the canonical description of a tile set. Values are produced by
// (*MetadataBuilder).Commit or by Normalize and are treated as immutable.
type Metadata struct {
	S2TileJSON   string
	Version      string
	Name         string
	Scheme       Scheme
	Description  string
	Type         SourceType
	Extension    string
	Encoding     Encoding
	Faces        []Face
	Bounds       *LonLatBounds
	WMBounds     WMBounds
	S2Bounds     FaceBounds
	MinZoom      uint8
	MaxZoom      uint8
	CenterPoint  Center
	Attributions Attributions
	Layers       LayersMetaData
	TileStats    TileStatsMetadata
	VectorLayers []VectorLayer

	// TileJSON v3 fields, carried through only when present.
	TileJSON    *string
	Tiles       []string
	Attribution *string
	FillZoom    *uint8
	Center      *[3]float64
	Template    *string
	Legend      *string
	Data        []string
	Grids       []string

	// Extra holds unknown top-level keys verbatim.
	Extra map[string]json.RawMessage
}

// DefaultMetadata returns the document every absent field falls back to.
func DefaultMetadata() Metadata {
	return Metadata{
		S2TileJSON:   DefaultSpecVersion,
		Version:      DefaultVersion,
		Name:         DefaultName,
		Scheme:       SchemeFzxy,
		Description:  DefaultDescription,
		Type:         SourceVector,
		Extension:    DefaultExtension,
		Encoding:     EncodingNone,
		Faces:        []Face{},
		WMBounds:     WMBounds{},
		MinZoom:      DefaultMinZoom,
		MaxZoom:      DefaultMaxZoom,
		Attributions: Attributions{},
		Layers:       LayersMetaData{},
		VectorLayers: []VectorLayer{},
	}
}

// metadataKeys lists the wire names in output order.
var metadataKeys = []string{
	"s2tilejson", "version", "name", "scheme", "description", "type", "extension",
	"encoding", "faces", "bounds", "wmbounds", "s2bounds", "minzoom", "maxzoom",
	"centerpoint", "attributions", "layers", "tilestats", "vector_layers",
	"tilejson", "tiles", "attribution", "fillzoom", "center", "template", "legend",
	"data", "grids",
}

func (m Metadata) fieldValue(key string) (any, bool) {
	switch key {
	case "s2tilejson":
		return m.S2TileJSON, true
	case "version":
		return m.Version, true
	case "name":
		return m.Name, true
	case "scheme":
		return m.Scheme, true
	case "description":
		return m.Description, true
	case "type":
		return m.Type, true
	case "extension":
		return m.Extension, true
	case "encoding":
		return m.Encoding, true
	case "faces":
		if m.Faces == nil {
			return []Face{}, true
		}
		return m.Faces, true
	case "bounds":
		return m.Bounds, m.Bounds != nil
	case "wmbounds":
		if m.WMBounds == nil {
			return WMBounds{}, true
		}
		return m.WMBounds, true
	case "s2bounds":
		return m.S2Bounds, true
	case "minzoom":
		return m.MinZoom, true
	case "maxzoom":
		return m.MaxZoom, true
	case "centerpoint":
		return m.CenterPoint, true
	case "attributions":
		if m.Attributions == nil {
			return Attributions{}, true
		}
		return m.Attributions, true
	case "layers":
		return m.Layers, true
	case "tilestats":
		return m.TileStats, true
	case "vector_layers":
		if m.VectorLayers == nil {
			return []VectorLayer{}, true
		}
		return m.VectorLayers, true
	case "tilejson":
		return m.TileJSON, m.TileJSON != nil
	case "tiles":
		return m.Tiles, m.Tiles != nil
	case "attribution":
		return m.Attribution, m.Attribution != nil
	case "fillzoom":
		return m.FillZoom, m.FillZoom != nil
	case "center":
		return m.Center, m.Center != nil
	case "template":
		return m.Template, m.Template != nil
	case "legend":
		return m.Legend, m.Legend != nil
	case "data":
		return m.Data, m.Data != nil
	case "grids":
		return m.Grids, m.Grids != nil
	}
	return nil, false
}

// MarshalJSON writes the canonical keys in a fixed order, then the Extra keys
// sorted by name. Absent legacy fields are omitted, never written as null.
func (m Metadata) MarshalJSON() ([]byte, error) {
	known := make(map[string]struct{}, len(metadataKeys))
	keys := make([]string, 0, len(metadataKeys)+len(m.Extra))
	for _, k := range metadataKeys {
		known[k] = struct{}{}
		if _, ok := m.fieldValue(k); ok {
			keys = append(keys, k)
		}
	}
	for _, k := range sortedKeys(m.Extra) {
		if _, dup := known[k]; !dup {
			keys = append(keys, k)
		}
	}
	return marshalSorted(keys, func(k string) ([]byte, error) {
		if v, ok := m.fieldValue(k); ok {
			if k == "layers" {
				return m.Layers.MarshalJSON()
			}
			return json.Marshal(v)
		}
		return []byte(m.Extra[k]), nil
	})
}

// UnmarshalJSON fills absent fields with their defaults. Any field present
// with the wrong structure fails the whole document.
func (m *Metadata) UnmarshalJSON(b []byte) error {
	d, err := newObjectDecoder(b, "metadata")
	if err != nil {
		return err
	}
	out := DefaultMetadata()
	d.field("s2tilejson", &out.S2TileJSON)
	d.field("version", &out.Version)
	d.field("name", &out.Name)
	d.field("scheme", &out.Scheme)
	d.field("description", &out.Description)
	d.field("type", &out.Type)
	d.field("extension", &out.Extension)
	d.field("encoding", &out.Encoding)
	fieldList(d, "faces", &out.Faces)
	var bounds LonLatBounds
	if d.field("bounds", &bounds) {
		out.Bounds = &bounds
	}
	d.field("wmbounds", &out.WMBounds)
	d.field("s2bounds", &out.S2Bounds)
	d.field("minzoom", &out.MinZoom)
	d.field("maxzoom", &out.MaxZoom)
	d.field("centerpoint", &out.CenterPoint)
	d.field("attributions", &out.Attributions)
	d.field("layers", &out.Layers)
	d.field("tilestats", &out.TileStats)
	d.field("vector_layers", &out.VectorLayers)
	d.field("tilejson", &out.TileJSON)
	d.field("tiles", &out.Tiles)
	d.field("attribution", &out.Attribution)
	d.field("fillzoom", &out.FillZoom)
	d.field("center", &out.Center)
	d.field("template", &out.Template)
	d.field("legend", &out.Legend)
	d.field("data", &out.Data)
	d.field("grids", &out.Grids)
	if err := d.err(); err != nil {
		return err
	}
	out.Extra = d.rest()
	*m = out
	return nil
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	out := m
	out.Faces = append([]Face{}, m.Faces...)
	if m.Bounds != nil {
		b := *m.Bounds
		out.Bounds = &b
	}
	out.WMBounds = m.WMBounds.clone()
	out.S2Bounds = m.S2Bounds.clone()
	out.Attributions = make(Attributions, len(m.Attributions))
	for k, v := range m.Attributions {
		out.Attributions[k] = v
	}
	out.Layers = m.Layers.Clone()
	out.VectorLayers = make([]VectorLayer, len(m.VectorLayers))
	for i, vl := range m.VectorLayers {
		out.VectorLayers[i] = vl.clone()
	}
	out.TileJSON = cloneRef(m.TileJSON)
	out.Attribution = cloneRef(m.Attribution)
	out.FillZoom = cloneRef(m.FillZoom)
	out.Center = cloneRef(m.Center)
	out.Template = cloneRef(m.Template)
	out.Legend = cloneRef(m.Legend)
	out.Tiles = cloneSlice(m.Tiles)
	out.Data = cloneSlice(m.Data)
	out.Grids = cloneSlice(m.Grids)
	if m.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func cloneRef[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T{}, s...)
}
