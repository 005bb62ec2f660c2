package s2tilejson

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Merge folds other into b: bounds are unioned elementwise, counters summed,
// faces unioned and the zoom range widened. Layers and attributions already
// registered on b win over other's. other is left untouched.
func (b *MetadataBuilder) Merge(other *MetadataBuilder) {
	if other == nil || other == b {
		return
	}
	b.lonLat.Extend(other.lonLat)
	for i, seen := range other.faces {
		b.faces[i] = b.faces[i] || seen
	}
	b.meta.TileStats.Merge(other.meta.TileStats)
	b.meta.WMBounds.Union(other.meta.WMBounds)
	b.meta.S2Bounds.Union(other.meta.S2Bounds)
	for name, href := range other.meta.Attributions {
		if _, ok := b.meta.Attributions[name]; !ok {
			b.meta.Attributions[name] = href
		}
	}
	// vector_layers keeps registration order, so walk it instead of the map.
	for _, vl := range other.meta.VectorLayers {
		if _, ok := b.meta.Layers[vl.ID]; ok {
			continue
		}
		if layer, ok := other.meta.Layers[vl.ID]; ok {
			b.meta.Layers[vl.ID] = layer.Clone()
			b.meta.VectorLayers = append(b.meta.VectorLayers, vl.clone())
		}
	}
	b.widenZoom(other.meta.MinZoom, other.meta.MaxZoom)
}

func (b *MetadataBuilder) clone() *MetadataBuilder {
	return &MetadataBuilder{lonLat: b.lonLat, faces: b.faces, meta: b.meta.Clone()}
}

// MergeBuilders combines per-worker builders with a pairwise tree reduction.
// Each pair merges right into left, so the result equals folding the builders
// in argument order. The inputs are not modified.
func MergeBuilders(ctx context.Context, builders ...*MetadataBuilder) (*MetadataBuilder, error) {
	level := make([]*MetadataBuilder, 0, len(builders))
	for _, b := range builders {
		if b != nil {
			level = append(level, b.clone())
		}
	}
	if len(level) == 0 {
		return NewMetadataBuilder(), ctx.Err()
	}
	for len(level) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := make([]*MetadataBuilder, (len(level)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i := 0; i < len(level); i += 2 {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				left := level[i]
				if i+1 < len(level) {
					left.Merge(level[i+1])
				}
				next[i/2] = left
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}
	return level[0], ctx.Err()
}
