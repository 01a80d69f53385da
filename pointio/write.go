package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/pointsearch/codec"
	"github.com/hupe1980/pointsearch/model"
)

// Format selects the result encoding.
type Format int

const (
	// FormatText prints human-readable lines; point lists are CSV.
	FormatText Format = iota
	// FormatJSON encodes results with a codec.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "csv" (or "text") and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv", "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("pointio: unknown format %q", s)
	}
}

// WriteOptions configures result encoding.
type WriteOptions struct {
	// Codec encodes FormatJSON output. Default: codec.Default.
	Codec codec.Codec
}

// PointRecord is the JSON form of a matched point.
type PointRecord struct {
	ID model.ID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// MatchList is the JSON form of a point listing.
type MatchList struct {
	Count  int           `json:"count"`
	Points []PointRecord `json:"points"`
}

// Summary is the outcome of a single query or a coverage search.
type Summary struct {
	Count  int     `json:"count"`
	Radius float64 `json:"radius"`

	// Coverage marks the result of a coverage search.
	Coverage   bool    `json:"coverage,omitempty"`
	Target     int     `json:"target,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Converged  bool    `json:"converged,omitempty"`
	Fraction   float64 `json:"fraction,omitempty"`
}

// WriteMatches lists points as an "X,Y" CSV table or as a JSON MatchList.
func WriteMatches(w io.Writer, points []model.Point, format Format, optFns ...func(*WriteOptions)) error {
	if format == FormatJSON {
		list := MatchList{Count: len(points), Points: make([]PointRecord, len(points))}
		for i, p := range points {
			list.Points[i] = PointRecord{ID: p.ID, X: p.X, Y: p.Y}
		}
		return writeJSON(w, list, optFns)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("X,Y\n"); err != nil {
		return err
	}

	var buf []byte
	for _, p := range points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'f', 6, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, p.Y, 'f', 6, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSummary prints the one-line result or encodes s as JSON.
func WriteSummary(w io.Writer, s Summary, format Format, optFns ...func(*WriteOptions)) error {
	if format == FormatJSON {
		return writeJSON(w, s, optFns)
	}

	var err error
	if s.Coverage {
		_, err = fmt.Fprintf(w, "%d points within radius %f.\n", s.Count, s.Radius)
	} else {
		_, err = fmt.Fprintf(w, "%d points within %f of the given centroids.\n", s.Count, s.Radius)
	}
	return err
}

func writeJSON(w io.Writer, v any, optFns []func(*WriteOptions)) error {
	var opts WriteOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	b, err := codec.Marshal(opts.Codec, v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
