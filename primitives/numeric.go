package primitives

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ratOf returns the exact value of a raw number. Floats are taken at their
// shortest decimal form, so 0.1 is 1/10 rather than its binary expansion.
func ratOf(raw any) (*big.Rat, bool) {
	switch n := raw.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int8:
		return new(big.Rat).SetInt64(int64(n)), true
	case int16:
		return new(big.Rat).SetInt64(int64(n)), true
	case int32:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float32:
		return floatRat(float64(n), 32)
	case float64:
		return floatRat(n, 64)
	case json.Number:
		return parseDecimal(string(n))
	case *big.Rat:
		if n == nil {
			return nil, false
		}
		return new(big.Rat).Set(n), true
	case *big.Int:
		if n == nil {
			return nil, false
		}
		return new(big.Rat).SetInt(n), true
	}
	return nil, false
}

func floatRat(f float64, bits int) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, bits))
}

// parseDecimal parses decimal text ("42", "-0.5", "1e3") exactly.
func parseDecimal(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "/_xXpP") {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return nil, false
	}
	if math.IsNaN(f) || (math.IsInf(f, 0) && err == nil) {
		return nil, false
	}
	return new(big.Rat).SetString(s)
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// formatRat renders an exact number as short decimal text.
func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// int64Of returns r as an int64 when it is integral and in range for an
// integer of the given size.
func int64Of(r *big.Rat, bits int) (int64, bool) {
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	v := r.Num().Int64()
	if bits == 32 && (v < math.MinInt32 || v > math.MaxInt32) {
		return 0, false
	}
	return v, true
}
