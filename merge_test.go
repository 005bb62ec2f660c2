package s2tilejson_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/open-s2/s2tilejson"
)

type tile struct {
	face s2tilejson.Face
	zoom uint8
	x, y uint32
	ll   s2tilejson.LonLatBounds
}

var mergeTiles = []tile{
	{s2tilejson.Face0, 3, 1, 2, s2tilejson.LonLatBounds{Left: -10, Bottom: -10, Right: 0, Top: 0}},
	{s2tilejson.Face1, 5, 22, 37, s2tilejson.LonLatBounds{Left: -120, Bottom: -7, Right: 44, Top: 72}},
	{s2tilejson.Face1, 5, 20, 40, s2tilejson.LonLatBounds{Left: 5, Bottom: 5, Right: 6, Top: 6}},
	{s2tilejson.Face4, 9, 100, 3, s2tilejson.LonLatBounds{Left: 100, Bottom: -80, Right: 110, Top: -70}},
	{s2tilejson.Face5, 0, 0, 0, s2tilejson.LonLatBounds{Left: 1, Bottom: 1, Right: 2, Top: 2}},
}

func ingest(b *s2tilejson.MetadataBuilder, tiles []tile) {
	for _, tl := range tiles {
		b.AddTileS2(tl.face, tl.zoom, tl.x, tl.y, tl.ll)
	}
}

func commitJSON(t *testing.T, b *s2tilejson.MetadataBuilder) string {
	t.Helper()
	out, err := json.Marshal(b.Commit())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

func TestMergeBuilders_EqualsSequential(t *testing.T) {
	seq := s2tilejson.NewMetadataBuilder()
	seq.AddLayer("water", waterLines(t))
	ingest(seq, mergeTiles)
	seq.AddAttribution("OSM", "https://osm.org")

	parts := make([]*s2tilejson.MetadataBuilder, len(mergeTiles))
	for i, tl := range mergeTiles {
		parts[i] = s2tilejson.NewMetadataBuilder()
		ingest(parts[i], []tile{tl})
	}
	parts[0].AddLayer("water", waterLines(t))
	parts[3].AddAttribution("OSM", "https://osm.org")

	merged, err := s2tilejson.MergeBuilders(context.Background(), parts...)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got, want := commitJSON(t, merged), commitJSON(t, seq); got != want {
		t.Fatalf("merged result differs from sequential:\n%s\n%s", got, want)
	}
	if parts[0].Commit().TileStats.Total() != 1 {
		t.Fatalf("inputs must not be modified")
	}
}

func TestMerge_FirstLayerWins(t *testing.T) {
	a := s2tilejson.NewMetadataBuilder()
	b := s2tilejson.NewMetadataBuilder()
	first := waterLines(t)
	second := waterLines(t)
	second.MaxZoom = 20
	a.AddLayer("water", first)
	b.AddLayer("water", second)
	b.AddLayer("roads", second)
	a.Merge(b)
	m := a.Commit()
	if m.Layers["water"].MaxZoom != 13 {
		t.Fatalf("receiver registration should win")
	}
	if len(m.VectorLayers) != 2 || m.VectorLayers[0].ID != "water" || m.VectorLayers[1].ID != "roads" {
		t.Fatalf("vector_layers: %+v", m.VectorLayers)
	}
	if m.MaxZoom != 20 {
		t.Fatalf("zoom range should widen to 20, got %d", m.MaxZoom)
	}
}

func TestMerge_Commutative(t *testing.T) {
	build := func(tiles []tile) *s2tilejson.MetadataBuilder {
		b := s2tilejson.NewMetadataBuilder()
		ingest(b, tiles)
		return b
	}
	ab := build(mergeTiles[:2])
	ab.Merge(build(mergeTiles[2:]))
	ba := build(mergeTiles[2:])
	ba.Merge(build(mergeTiles[:2]))
	if commitJSON(t, ab) != commitJSON(t, ba) {
		t.Fatalf("tile-only merge should not depend on order")
	}
}

func TestMergeBuilders_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s2tilejson.MergeBuilders(ctx, s2tilejson.NewMetadataBuilder(), s2tilejson.NewMetadataBuilder())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMergeBuilders_Empty(t *testing.T) {
	b, err := s2tilejson.MergeBuilders(context.Background())
	if err != nil || b == nil {
		t.Fatalf("empty merge: %v", err)
	}
	if b.Commit().TileStats.Total() != 0 {
		t.Fatalf("empty merge should yield an empty builder")
	}
}
