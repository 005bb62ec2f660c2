package s2tilejson

import (
	"math"

	"github.com/paulmach/orb/maptile"
)

const (
	// builderMinZoom and builderMaxZoom start the zoom range inverted so the
	// first layer narrows it.
	builderMinZoom = 30
	builderMaxZoom = 0
)

// MetadataBuilder accumulates metadata while tiles are produced. It is not
// safe for concurrent use; run one builder per worker and combine them with
// Merge or MergeBuilders.
type MetadataBuilder struct {
	lonLat LonLatBounds
	faces  [FaceCount]bool
	meta   Metadata
}

// NewMetadataBuilder returns a builder with inverted accumulators: lon/lat
// bounds at ±Inf and the zoom range at minzoom 30, maxzoom 0. Every other
// field starts at its documented default.
func NewMetadataBuilder() *MetadataBuilder {
	meta := DefaultMetadata()
	meta.MinZoom = builderMinZoom
	meta.MaxZoom = builderMaxZoom
	return &MetadataBuilder{lonLat: NewLonLatAccumulator(), meta: meta}
}

func (b *MetadataBuilder) SetName(name string)               { b.meta.Name = name }
func (b *MetadataBuilder) SetDescription(description string) { b.meta.Description = description }
func (b *MetadataBuilder) SetVersion(version string)         { b.meta.Version = version }
func (b *MetadataBuilder) SetScheme(scheme Scheme)           { b.meta.Scheme = scheme }
func (b *MetadataBuilder) SetType(t SourceType)              { b.meta.Type = t }
func (b *MetadataBuilder) SetEncoding(encoding Encoding)     { b.meta.Encoding = encoding }
func (b *MetadataBuilder) SetExtension(extension string)     { b.meta.Extension = extension }

// AddAttribution records a display name and its link.
func (b *MetadataBuilder) AddAttribution(name, href string) {
	b.meta.Attributions[name] = href
}

// AddLayer registers a layer under name. The first registration wins: a later
// call with the same name leaves the stored layer and vector_layers alone.
// The dataset zoom range is widened either way.
func (b *MetadataBuilder) AddLayer(name string, layer LayerMetaData) {
	if _, ok := b.meta.Layers[name]; !ok {
		layer = layer.Clone()
		b.meta.Layers[name] = layer
		b.meta.VectorLayers = append(b.meta.VectorLayers, vectorLayerFor(name, layer))
	}
	b.widenZoom(layer.MinZoom, layer.MaxZoom)
}

// AddTileWM records one web mercator tile and its lon/lat footprint. The
// dataset zoom range comes from layers only; tiles leave it alone.
func (b *MetadataBuilder) AddTileWM(zoom uint8, x, y uint32, ll LonLatBounds) {
	// WM tiles have no cube face; only the total moves.
	b.meta.TileStats.incrementTotal()
	b.faces[Face0] = true
	b.meta.WMBounds.Extend(zoom, uint64(x), uint64(y))
	b.lonLat.Extend(ll)
}

// AddTileWMTile records a web mercator tile, deriving its footprint from the
// tile's geographic bound.
func (b *MetadataBuilder) AddTileWMTile(t maptile.Tile) {
	b.AddTileWM(uint8(t.Z), t.X, t.Y, LonLatBoundsFromOrb(t.Bound()))
}

// AddTileS2 records one S2 tile on face and its lon/lat footprint. A face
// outside 0..5 is a no-op: nothing is counted and neither bounds table moves.
// Like AddTileWM it does not touch the dataset zoom range.
func (b *MetadataBuilder) AddTileS2(face Face, zoom uint8, x, y uint32, ll LonLatBounds) {
	if !face.Valid() {
		return
	}
	b.meta.TileStats.Increment(face)
	b.faces[face] = true
	b.meta.S2Bounds.Entry(face).Extend(zoom, uint64(x), uint64(y))
	b.lonLat.Extend(ll)
}

func (b *MetadataBuilder) widenZoom(minzoom, maxzoom uint8) {
	b.meta.MinZoom = min(b.meta.MinZoom, minzoom)
	b.meta.MaxZoom = max(b.meta.MaxZoom, maxzoom)
}

// Commit derives the center point and the face list and returns a snapshot
// independent of the builder. Calling it again recomputes from the current
// state.
func (b *MetadataBuilder) Commit() Metadata {
	m := b.meta.Clone()
	// no layers registered
	if m.MinZoom > m.MaxZoom {
		m.MinZoom, m.MaxZoom = DefaultMinZoom, DefaultMaxZoom
	}
	var center Center
	center.Zoom = uint8((uint16(m.MinZoom) + uint16(m.MaxZoom)) >> 1)
	if !math.IsInf(b.lonLat.Left, 1) {
		ll := b.lonLat
		center.Lon = (ll.Left + ll.Right) / 2
		center.Lat = (ll.Bottom + ll.Top) / 2
		m.Bounds = &ll
	}
	m.CenterPoint = center
	m.Faces = m.Faces[:0]
	for _, f := range Faces {
		if b.faces[f] {
			m.Faces = append(m.Faces, f)
		}
	}
	return m
}
