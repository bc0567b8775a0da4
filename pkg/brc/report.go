package brc

import (
	"bytes"
	"io"
	"maps"
	"slices"
	"strconv"
)

// Format renders res as {key=min/mean/max, ...} with keys in ascending
// order and every number to one decimal place.
func Format(res Result) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(res)) {
		if i > 0 {
			buf.WriteString(", ")
		}
		s := res[key]
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(s.Min))
		buf.WriteByte('/')
		buf.WriteString(formatValue(s.Mean()))
		buf.WriteByte('/')
		buf.WriteString(formatValue(s.Max))
	}
	buf.WriteByte('}')
	return buf.String()
}

// WriteReport writes Format(res) followed by a newline.
func WriteReport(w io.Writer, res Result) error {
	_, err := io.WriteString(w, Format(res)+"\n")
	return err
}

func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
