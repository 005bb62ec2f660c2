package s2tilejson

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// TileStatsMetadata counts tiles per face and overall. Counters only grow
// through Increment, which keeps the total equal to the sum of the faces.
// Web mercator tiles are the exception: they have no face and move the total
// alone.
type TileStatsMetadata struct {
	total uint64
	faces [FaceCount]uint64
}

// Increment counts one tile on the given face. An out of range face is a
// no-op.
func (s *TileStatsMetadata) Increment(face Face) {
	if !face.Valid() {
		return
	}
	s.faces[face]++
	s.total++
}

func (s *TileStatsMetadata) incrementTotal() { s.total++ }

// Total returns the number of tiles counted.
func (s TileStatsMetadata) Total() uint64 { return s.total }

// Get returns the tile count of a face.
func (s TileStatsMetadata) Get(face Face) uint64 {
	if !face.Valid() {
		return 0
	}
	return s.faces[face]
}

// Merge adds o's counters into s.
func (s *TileStatsMetadata) Merge(o TileStatsMetadata) {
	s.total += o.total
	for i := range s.faces {
		s.faces[i] += o.faces[i]
	}
}

// MarshalJSON writes {"total":N,"0":..,"5":..}.
func (s TileStatsMetadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"total":`)
	buf.WriteString(strconv.FormatUint(s.total, 10))
	for i, n := range s.faces {
		buf.WriteString(`,"`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`":`)
		buf.WriteString(strconv.FormatUint(n, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flat counter object; absent counters are zero.
// The stored total is taken as written and is not checked against the face
// counters, since web mercator tiles count toward the total only.
func (s *TileStatsMetadata) UnmarshalJSON(b []byte) error {
	var raw map[string]uint64
	if err := json.Unmarshal(b, &raw); err != nil {
		return singleIssue("/", CodeInvalidType, "expected tile stats object of counters")
	}
	var out TileStatsMetadata
	for k, n := range raw {
		if k == "total" {
			out.total = n
			continue
		}
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= FaceCount {
			continue
		}
		out.faces[i] = n
	}
	*s = out
	return nil
}
