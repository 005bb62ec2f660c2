package s2tilejson

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Face identifies one of the six faces of the S2 cube projection.
type Face uint8

const (
	Face0 Face = iota
	Face1
	Face2
	Face3
	Face4
	Face5
)

// FaceCount is the number of cube faces.
const FaceCount = 6

// Faces lists every face in ascending order.
var Faces = [FaceCount]Face{Face0, Face1, Face2, Face3, Face4, Face5}

// FaceFromUint8 returns the face for a raw numeral. Out-of-range values fail
// with an unknown_variant issue.
func FaceFromUint8(v uint8) (Face, error) {
	if v >= FaceCount {
		return Face0, unknownVariant("Face", v)
	}
	return Face(v), nil
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool { return f < FaceCount }

// String returns the wire numeral of the face ("0".."5").
func (f Face) String() string { return strconv.Itoa(int(f)) }

// MarshalJSON encodes the face as its numeral.
func (f Face) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, unknownVariant("Face", uint8(f))
	}
	return []byte(strconv.Itoa(int(f))), nil
}

// UnmarshalJSON decodes a numeral in 0..5.
func (f *Face) UnmarshalJSON(b []byte) error {
	var raw int64
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected face numeral")
	}
	if raw < 0 || raw >= FaceCount {
		return unknownVariant("Face", raw)
	}
	*f = Face(raw)
	return nil
}
