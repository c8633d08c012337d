package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceQuantity turns loosely typed input (JSON numbers, numeric strings)
// into an integer quantity by flooring. Anything unparseable is 0.
func CoerceQuantity(input any) int {
	switch v := input.(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return clampInt(float64(v))
	case float32:
		return floorQuantity(float64(v))
	case float64:
		return floorQuantity(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return clampInt(float64(i))
		}
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return floorQuantity(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return floorQuantity(f)
	default:
		return 0
	}
}

func floorQuantity(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return clampInt(math.Floor(f))
}

func clampInt(f float64) int {
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}
