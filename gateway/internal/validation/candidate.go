package validation

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// Candidate is an unchecked record as it arrives from a form or a JSON body.
// Fields may be missing or carry the wrong type.
type Candidate map[string]any

func DecodeCandidate(r io.Reader) (Candidate, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var c Candidate
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return c, nil
}

// str returns the string under key, or "" when it is absent or not a string.
func (c Candidate) str(key string) string {
	s, _ := c[key].(string)
	return s
}

// num returns the number under key. Numeric strings are accepted since form
// inputs send them that way. Anything else is reported as absent.
func (c Candidate) num(key string) *float64 {
	var f float64
	switch v := c[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// integer is num restricted to whole numbers.
func (c Candidate) integer(key string) *int {
	f := c.num(key)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	i := int(*f)
	return &i
}
