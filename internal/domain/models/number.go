package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a numeric value with one serialization rule: it marshals as an
// integer when the value is whole and as a floating-point number otherwise,
// so timestamps read as `1704844800000` rather than `1.7048448e+12`.
type Number float64

// MarshalJSON implements the integer-if-whole encoding rule.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return strconv.AppendInt(nil, int64(f), 10), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON accepts either integer or floating-point input.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}
