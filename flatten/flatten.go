package flatten

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Separator joins path segments.
const Separator = "."

// Flatten walks value depth first and returns one entry per leaf. Objects
// contribute their keys and arrays their indexes as path segments. A nil
// leaf maps to the empty string and a scalar root is stored under the
// empty key.
func Flatten(value any) map[string]string {
	out := make(map[string]string)
	walk(value, "", out)

	return out
}

// Prefix mounts flat under prefix. The empty key, produced by a scalar
// root, becomes prefix itself.
func Prefix(
	prefix string,
	flat map[string]string,
) map[string]string {
	out := make(map[string]string, len(flat))

	for key, val := range flat {
		out[join(prefix, key)] = val
	}

	return out
}

func join(prefix string, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + Separator + key
	}
}

func child(prefix string, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + Separator + key
}

//nolint:cyclop // one case per decoded shape
func walk(value any, prefix string, out map[string]string) {
	switch typedVal := value.(type) {
	case map[string]any:
		for key, val := range typedVal {
			walk(val, child(prefix, key), out)
		}
	case map[any]any:
		for key, val := range typedVal {
			walk(val, child(prefix, fmt.Sprint(key)), out)
		}
	case map[string]string:
		for key, val := range typedVal {
			out[child(prefix, key)] = val
		}
	case yaml.MapSlice:
		for _, item := range typedVal {
			walk(item.Value, child(prefix, fmt.Sprint(item.Key)), out)
		}
	case []any:
		for idx, val := range typedVal {
			walk(val, child(prefix, strconv.Itoa(idx)), out)
		}
	case []string:
		for idx, val := range typedVal {
			out[child(prefix, strconv.Itoa(idx))] = val
		}
	case []map[string]any:
		for idx, val := range typedVal {
			walk(val, child(prefix, strconv.Itoa(idx)), out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = scalar(typedVal)
	}
}

// scalar renders a leaf. Strings keep their raw content; unknown types
// fall back to fmt.
func scalar(value any) string {
	switch typedVal := value.(type) {
	case string:
		return typedVal
	case json.Number:
		return formatNumber(typedVal)
	case bool:
		return strconv.FormatBool(typedVal)
	case float64:
		return formatFloat(typedVal, 64)
	case float32:
		return formatFloat(float64(typedVal), 32)
	case int:
		return strconv.Itoa(typedVal)
	case int64:
		return strconv.FormatInt(typedVal, 10)
	case int32:
		return strconv.FormatInt(int64(typedVal), 10)
	case uint64:
		return strconv.FormatUint(typedVal, 10)
	case uint:
		return strconv.FormatUint(uint64(typedVal), 10)
	case fmt.Stringer:
		return typedVal.String()
	default:
		return fmt.Sprint(typedVal)
	}
}

// formatNumber keeps integer literals digit for digit, so
// integers beyond float64 precision survive. Any other literal
// ("1.0e2", "12.340") is printed like the equivalent float.
func formatNumber(num json.Number) string {
	lit := num.String()

	if isIntegerLiteral(lit) {
		if strings.Trim(lit, "-0") == "" {
			return "0"
		}

		return lit
	}

	fl, err := num.Float64()
	if err != nil {
		return lit
	}

	return formatFloat(fl, 64)
}

func isIntegerLiteral(lit string) bool {
	digits := strings.TrimPrefix(lit, "-")
	if digits == "" {
		return false
	}

	for idx := range len(digits) {
		if digits[idx] < '0' || digits[idx] > '9' {
			return false
		}
	}

	return true
}

// formatFloat prints the shortest representation, switching to exponent
// form at the same thresholds as encoding/json.
func formatFloat(fl float64, bits int) string {
	if fl == 0 {
		// Covers negative zero.
		return "0"
	}

	format := byte('f')

	if abs := math.Abs(fl); abs != 0 &&
		(abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	return strconv.FormatFloat(fl, format, -1, bits)
}
