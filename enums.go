package s2tilejson

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Wire tables. Members are encoded through these tables rather than their Go
// ordinal so reordering the constants never changes the wire format.

// DrawType describes the geometry kinds found in a layer.
type DrawType uint8

const (
	DrawPoints DrawType = iota + 1
	DrawLines
	DrawPolygons
	DrawPoints3D
	DrawLines3D
	DrawPolygons3D
	DrawRaster
	DrawGrid
)

var drawTypeCodes = map[DrawType]uint8{
	DrawPoints:     1,
	DrawLines:      2,
	DrawPolygons:   3,
	DrawPoints3D:   4,
	DrawLines3D:    5,
	DrawPolygons3D: 6,
	DrawRaster:     7,
	DrawGrid:       8,
}

var drawTypeByCode = map[uint8]DrawType{
	1: DrawPoints,
	2: DrawLines,
	3: DrawPolygons,
	4: DrawPoints3D,
	5: DrawLines3D,
	6: DrawPolygons3D,
	7: DrawRaster,
	8: DrawGrid,
}

var drawTypeNames = map[DrawType]string{
	DrawPoints:     "Points",
	DrawLines:      "Lines",
	DrawPolygons:   "Polygons",
	DrawPoints3D:   "Points3D",
	DrawLines3D:    "Lines3D",
	DrawPolygons3D: "Polygons3D",
	DrawRaster:     "Raster",
	DrawGrid:       "Grid",
}

// DrawTypeFromCode decodes a numeric wire code. Unknown codes are fatal.
func DrawTypeFromCode(code uint8) (DrawType, error) {
	d, ok := drawTypeByCode[code]
	if !ok {
		return 0, unknownVariant("DrawType", code)
	}
	return d, nil
}

// ParseDrawType resolves a human readable name such as "Lines" (case-insensitive).
func ParseDrawType(name string) (DrawType, error) {
	for d, n := range drawTypeNames {
		if strings.EqualFold(n, name) {
			return d, nil
		}
	}
	return 0, unknownVariant("DrawType", name)
}

// Code returns the numeric wire code.
func (d DrawType) Code() uint8 { return drawTypeCodes[d] }

func (d DrawType) String() string {
	if n, ok := drawTypeNames[d]; ok {
		return n
	}
	return "DrawType(" + strconv.Itoa(int(d)) + ")"
}

func (d DrawType) MarshalJSON() ([]byte, error) {
	code, ok := drawTypeCodes[d]
	if !ok {
		return nil, unknownVariant("DrawType", uint8(d))
	}
	return []byte(strconv.Itoa(int(code))), nil
}

func (d *DrawType) UnmarshalJSON(b []byte) error {
	var raw int64
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected draw type code")
	}
	if raw < 0 || raw > 255 {
		return unknownVariant("DrawType", raw)
	}
	v, err := DrawTypeFromCode(uint8(raw))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Scheme is the tile request scheme. Default S2 scheme is fzxy, default web
// mercator scheme is xyz; a t prefix makes requests time sensitive.
type Scheme uint8

const (
	SchemeFzxy Scheme = iota
	SchemeTfzxy
	SchemeXyz
	SchemeTxyz
	SchemeTms
)

var schemeNames = map[Scheme]string{
	SchemeFzxy:  "fzxy",
	SchemeTfzxy: "tfzxy",
	SchemeXyz:   "xyz",
	SchemeTxyz:  "txyz",
	SchemeTms:   "tms",
}

// ParseScheme decodes a scheme name. Unknown names fall back to tms.
func ParseScheme(s string) Scheme {
	for k, n := range schemeNames {
		if n == s {
			return k
		}
	}
	return SchemeTms
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return schemeNames[SchemeTms]
}

func (s Scheme) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Scheme) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected scheme string")
	}
	*s = ParseScheme(raw)
	return nil
}

// SourceType is the kind of data the tiles carry.
type SourceType uint8

const (
	SourceVector SourceType = iota
	SourceJSON
	SourceRaster
	SourceRasterDEM
	SourceGrid
	SourceMarkers
	SourceSensor
	SourceUnknown
)

var sourceTypeNames = map[SourceType]string{
	SourceVector:    "vector",
	SourceJSON:      "json",
	SourceRaster:    "raster",
	SourceRasterDEM: "raster-dem",
	SourceGrid:      "grid",
	SourceMarkers:   "markers",
	SourceSensor:    "sensor",
	SourceUnknown:   "unknown",
}

// ParseSourceType decodes a source type. Unknown names (e.g. the "overlay"
// written by older engines) map to SourceUnknown.
func ParseSourceType(s string) SourceType {
	for k, n := range sourceTypeNames {
		if n == s {
			return k
		}
	}
	return SourceUnknown
}

func (t SourceType) String() string {
	if n, ok := sourceTypeNames[t]; ok {
		return n
	}
	return sourceTypeNames[SourceUnknown]
}

func (t SourceType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *SourceType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected source type string")
	}
	*t = ParseSourceType(raw)
	return nil
}

// Encoding is the compression applied to each tile.
type Encoding uint8

const (
	EncodingNone Encoding = iota
	EncodingGzip
	EncodingBrotli
	EncodingZstd
)

var encodingNames = map[Encoding]string{
	EncodingNone:   "none",
	EncodingGzip:   "gzip",
	EncodingBrotli: "br",
	EncodingZstd:   "zstd",
}

var encodingCodes = map[Encoding]uint8{
	EncodingNone:   0,
	EncodingGzip:   1,
	EncodingBrotli: 2,
	EncodingZstd:   3,
}

// ParseEncoding decodes an encoding name; "gz" is accepted for gzip and
// unknown names fall back to none.
func ParseEncoding(s string) Encoding {
	if s == "gz" {
		return EncodingGzip
	}
	for k, n := range encodingNames {
		if n == s {
			return k
		}
	}
	return EncodingNone
}

// EncodingFromCode decodes the numeric alias; unknown codes fall back to none.
func EncodingFromCode(code uint8) Encoding {
	for k, c := range encodingCodes {
		if c == code {
			return k
		}
	}
	return EncodingNone
}

// Code returns the numeric alias of the encoding.
func (e Encoding) Code() uint8 { return encodingCodes[e] }

func (e Encoding) String() string {
	if n, ok := encodingNames[e]; ok {
		return n
	}
	return encodingNames[EncodingNone]
}

func (e Encoding) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

// UnmarshalJSON accepts either the string form or the numeric alias.
func (e *Encoding) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = ParseEncoding(s)
		return nil
	}
	var code int64
	if err := json.Unmarshal(b, &code); err != nil {
		return singleIssue("/", CodeInvalidType, "expected encoding string or code")
	}
	if code < 0 || code > 255 {
		*e = EncodingNone
		return nil
	}
	*e = EncodingFromCode(uint8(code))
	return nil
}
