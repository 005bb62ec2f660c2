package s2tilejson

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LegacyMetadata is the TileJSON v3 dialect. Only tiles and vector_layers are
// required; every other field is optional.
type LegacyMetadata struct {
	TileJSON     *string
	Name         *string
	Description  *string
	Version      *string
	Attribution  *string
	Template     *string
	Legend       *string
	Scheme       *string
	Type         *string
	Extension    *string
	Encoding     *Encoding
	Tiles        []string
	Grids        []string
	Data         []string
	MinZoom      *uint8
	MaxZoom      *uint8
	Bounds       *LonLatBounds
	Center       *[3]float64
	FillZoom     *uint8
	VectorLayers []VectorLayer

	Extra map[string]json.RawMessage
}

// UnmarshalJSON fails when either required field is missing or any present
// field has the wrong structure.
func (l *LegacyMetadata) UnmarshalJSON(b []byte) error {
	d, err := newObjectDecoder(b, "legacy metadata")
	if err != nil {
		return err
	}
	var out LegacyMetadata
	for _, req := range []string{"tiles", "vector_layers"} {
		if !d.has(req) {
			d.iss = AppendIssues(d.iss, newIssue("/"+req, CodeSchema, "missing required field "+req, map[string]any{"field": req}))
		}
	}
	d.field("tilejson", &out.TileJSON)
	d.field("name", &out.Name)
	d.field("description", &out.Description)
	d.field("version", &out.Version)
	d.field("attribution", &out.Attribution)
	d.field("template", &out.Template)
	d.field("legend", &out.Legend)
	d.field("scheme", &out.Scheme)
	d.field("type", &out.Type)
	d.field("extension", &out.Extension)
	var enc Encoding
	if d.field("encoding", &enc) {
		out.Encoding = &enc
	}
	d.field("tiles", &out.Tiles)
	d.field("grids", &out.Grids)
	d.field("data", &out.Data)
	d.field("minzoom", &out.MinZoom)
	d.field("maxzoom", &out.MaxZoom)
	var bounds LonLatBounds
	if d.field("bounds", &bounds) {
		out.Bounds = &bounds
	}
	d.field("center", &out.Center)
	d.field("fillzoom", &out.FillZoom)
	d.field("vector_layers", &out.VectorLayers)
	if err := d.err(); err != nil {
		return err
	}
	out.Extra = d.rest()
	*l = out
	return nil
}

// ToMetadata converts the legacy document into canonical metadata. Fields the
// legacy document lacks take the canonical defaults; faces default to the
// single web mercator face.
func (l LegacyMetadata) ToMetadata() Metadata {
	m := DefaultMetadata()
	m.Faces = []Face{Face0}
	if l.Name != nil {
		m.Name = *l.Name
	}
	if l.Description != nil {
		m.Description = *l.Description
	}
	if l.Version != nil {
		m.Version = *l.Version
	}
	if l.Scheme != nil {
		m.Scheme = ParseScheme(*l.Scheme)
	}
	if l.Type != nil {
		m.Type = ParseSourceType(*l.Type)
	}
	if l.Extension != nil {
		m.Extension = *l.Extension
	}
	if l.Encoding != nil {
		m.Encoding = *l.Encoding
	}
	if l.MinZoom != nil {
		m.MinZoom = *l.MinZoom
	}
	if l.MaxZoom != nil {
		m.MaxZoom = *l.MaxZoom
	}
	if l.Bounds != nil {
		b := *l.Bounds
		m.Bounds = &b
	}
	if l.Center != nil {
		c := *l.Center
		m.Center = &c
		m.CenterPoint = Center{Lon: c[0], Lat: c[1], Zoom: clampZoom(c[2])}
	}
	if l.Attribution != nil {
		m.Attributions = ParseAttribution(*l.Attribution)
	}
	for _, vl := range l.VectorLayers {
		m.VectorLayers = append(m.VectorLayers, vl.clone())
	}
	m.TileJSON = cloneRef(l.TileJSON)
	m.Attribution = cloneRef(l.Attribution)
	m.Template = cloneRef(l.Template)
	m.Legend = cloneRef(l.Legend)
	m.FillZoom = cloneRef(l.FillZoom)
	m.Tiles = cloneSlice(l.Tiles)
	m.Grids = cloneSlice(l.Grids)
	m.Data = cloneSlice(l.Data)
	if l.Extra != nil {
		m.Extra = make(map[string]json.RawMessage, len(l.Extra))
		for k, v := range l.Extra {
			m.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return m
}

func clampZoom(z float64) uint8 {
	switch {
	case z <= 0:
		return 0
	case z >= 255:
		return 255
	}
	return uint8(z)
}

// ParseAttribution reads the first HTML anchor of s into a single entry
// {text: href}. Both quote styles are accepted. Without an anchor carrying an
// href the result is empty.
func ParseAttribution(s string) Attributions {
	out := Attributions{}
	z := html.NewTokenizer(strings.NewReader(s))
	var href string
	var inAnchor bool
	var text bytes.Buffer
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed markup; an unterminated anchor yields nothing
			return out
		case html.StartTagToken:
			tok := z.Token()
			if inAnchor || tok.DataAtom != atom.A {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "href" {
					href = a.Val
					inAnchor = true
				}
			}
		case html.TextToken:
			if inAnchor {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			if !inAnchor {
				continue
			}
			if tok := z.Token(); tok.DataAtom == atom.A {
				name := strings.TrimSpace(text.String())
				if name != "" {
					out[name] = href
				}
				return out
			}
		}
	}
}
