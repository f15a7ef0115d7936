package h

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/hyperdom/pkg/dom"
)

// dateLayout follows the string form of a JavaScript Date, except that the
// zone in parentheses is the abbreviation ("UTC") rather than the long name
// ("Coordinated Universal Time"), which Go does not know.
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// toText converts a scalar to the text a browser would render for it.
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatNumber(float64(x), 32)
	case float64:
		return formatNumber(x, 64)
	case time.Time:
		return x.Format(dateLayout)
	case *regexp.Regexp:
		if x == nil {
			return ""
		}
		return "/" + x.String() + "/"
	case dom.Node:
		if !dom.IsNode(x) {
			return ""
		}
		return x.TextContent()
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatNumber(rv.Float(), 32)
	case reflect.Float64:
		return formatNumber(rv.Float(), 64)
	}
	return fmt.Sprint(v)
}

// formatNumber renders floats the way Number.prototype.toString does for the
// common cases: integral values without a fraction, exponents without
// leading zeros.
func formatNumber(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		s = strings.Replace(s, "e+0", "e+", 1)
		s = strings.Replace(s, "e-0", "e-", 1)
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
