package s2tilejson

import (
	"github.com/goccy/go-json"
)

// LayerMetaData is the blueprint of one vector layer, declared before any
// vector data is built.
type LayerMetaData struct {
	Description *string    `json:"description,omitempty"`
	MinZoom     uint8      `json:"minzoom"`
	MaxZoom     uint8      `json:"maxzoom"`
	DrawTypes   []DrawType `json:"draw_types"`
	Shape       Shape      `json:"shape"`
	// MShape is the shape used inside feature m-values.
	MShape Shape `json:"mShape,omitempty"`
}

// LayersMetaData maps layer names to their blueprint.
type LayersMetaData map[string]LayerMetaData

// Equal compares every field; shapes are compared structurally.
func (l LayerMetaData) Equal(o LayerMetaData) bool {
	if (l.Description == nil) != (o.Description == nil) {
		return false
	}
	if l.Description != nil && *l.Description != *o.Description {
		return false
	}
	if l.MinZoom != o.MinZoom || l.MaxZoom != o.MaxZoom {
		return false
	}
	if len(l.DrawTypes) != len(o.DrawTypes) {
		return false
	}
	for i := range l.DrawTypes {
		if l.DrawTypes[i] != o.DrawTypes[i] {
			return false
		}
	}
	if (l.MShape == nil) != (o.MShape == nil) {
		return false
	}
	return l.Shape.Equal(o.Shape) && l.MShape.Equal(o.MShape)
}

// Clone returns a deep copy.
func (l LayerMetaData) Clone() LayerMetaData {
	out := l
	if l.Description != nil {
		d := *l.Description
		out.Description = &d
	}
	if l.DrawTypes != nil {
		out.DrawTypes = append([]DrawType(nil), l.DrawTypes...)
	}
	out.Shape = l.Shape.Clone()
	out.MShape = l.MShape.Clone()
	return out
}

// MarshalJSON always writes draw_types and shape, even when empty.
func (l LayerMetaData) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, 6)
	if l.Description != nil {
		keys = append(keys, "description")
	}
	keys = append(keys, "minzoom", "maxzoom", "draw_types", "shape")
	if l.MShape != nil {
		keys = append(keys, "mShape")
	}
	return marshalSorted(keys, func(k string) ([]byte, error) {
		switch k {
		case "description":
			return json.Marshal(*l.Description)
		case "minzoom":
			return json.Marshal(l.MinZoom)
		case "maxzoom":
			return json.Marshal(l.MaxZoom)
		case "draw_types":
			if l.DrawTypes == nil {
				return []byte("[]"), nil
			}
			return json.Marshal(l.DrawTypes)
		case "shape":
			if l.Shape == nil {
				return []byte("{}"), nil
			}
			return l.Shape.MarshalJSON()
		default:
			return l.MShape.MarshalJSON()
		}
	})
}

func (l *LayerMetaData) UnmarshalJSON(b []byte) error {
	d, err := newObjectDecoder(b, "layer")
	if err != nil {
		return err
	}
	var out LayerMetaData
	var desc string
	if d.field("description", &desc) {
		out.Description = &desc
	}
	d.field("minzoom", &out.MinZoom)
	d.field("maxzoom", &out.MaxZoom)
	fieldList(d, "draw_types", &out.DrawTypes)
	d.field("shape", &out.Shape)
	d.field("mShape", &out.MShape)
	if err := d.err(); err != nil {
		return err
	}
	if out.Shape == nil {
		out.Shape = Shape{}
	}
	*l = out
	return nil
}

// MarshalJSON writes layers sorted by name.
func (ls LayersMetaData) MarshalJSON() ([]byte, error) {
	return marshalSorted(sortedKeys(ls), func(k string) ([]byte, error) {
		return ls[k].MarshalJSON()
	})
}

func (ls *LayersMetaData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		return singleIssue("/", CodeInvalidType, "expected object of layers keyed by name")
	}
	out := make(LayersMetaData, len(raw))
	var iss Issues
	for _, name := range sortedKeys(raw) {
		var l LayerMetaData
		if err := l.UnmarshalJSON(raw[name]); err != nil {
			if ii, ok := prefixIssues(err, "/"+escapePointer(name)).(Issues); ok {
				iss = AppendIssues(iss, ii...)
			}
			continue
		}
		out[name] = l
	}
	if len(iss) > 0 {
		return iss
	}
	*ls = out
	return nil
}

// Clone returns a deep copy.
func (ls LayersMetaData) Clone() LayersMetaData {
	out := make(LayersMetaData, len(ls))
	for k, l := range ls {
		out[k] = l.Clone()
	}
	return out
}

// VectorLayer is the legacy TileJSON layer description.
type VectorLayer struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	MinZoom     *uint8  `json:"minzoom,omitempty"`
	MaxZoom     *uint8  `json:"maxzoom,omitempty"`
	// Fields maps property names to a human readable description.
	Fields map[string]string `json:"fields"`
}

// UnmarshalJSON reads a vector layer; a missing or null fields object decodes
// to an empty map.
func (v *VectorLayer) UnmarshalJSON(b []byte) error {
	type plain VectorLayer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return singleIssue("/", CodeInvalidType, err.Error())
	}
	if p.Fields == nil {
		p.Fields = map[string]string{}
	}
	*v = VectorLayer(p)
	return nil
}

func (v VectorLayer) clone() VectorLayer {
	out := v
	if v.Description != nil {
		d := *v.Description
		out.Description = &d
	}
	if v.MinZoom != nil {
		z := *v.MinZoom
		out.MinZoom = &z
	}
	if v.MaxZoom != nil {
		z := *v.MaxZoom
		out.MaxZoom = &z
	}
	out.Fields = make(map[string]string, len(v.Fields))
	for k, d := range v.Fields {
		out.Fields[k] = d
	}
	return out
}

func vectorLayerFor(name string, layer LayerMetaData) VectorLayer {
	minz, maxz := layer.MinZoom, layer.MaxZoom
	vl := VectorLayer{ID: name, MinZoom: &minz, MaxZoom: &maxz, Fields: map[string]string{}}
	if layer.Description != nil {
		d := *layer.Description
		vl.Description = &d
	}
	return vl
}
