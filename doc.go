// Package s2tilejson models tile set metadata for web mercator (WM) and
// six-face cube (S2) tilings.
//
// It provides:
//
// - Shape, a recursive schema describing the layout of vector feature
// properties, compared structurally
// - MetadataBuilder, a single pass aggregator of per-face/per-zoom tile
// bounds, lon/lat extents and tile counts, committed into Metadata
// - Normalize, which reads either the canonical document or the legacy
// TileJSON dialect into canonical Metadata
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put JSON/YAML token work under
// internal/engine.
// - A builder is single threaded. Parallel tile production runs one builder
// per worker and combines them with MergeBuilders.
//
// Typical usage:
//
//	b := s2tilejson.NewMetadataBuilder()
//	b.AddLayer("water", layer)
//	b.AddTileS2(s2tilejson.Face1, 5, 22, 37, ll)
//	meta := b.Commit()
//
//	meta, format, err := s2tilejson.Normalize(data)
package s2tilejson
