package record

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// compareRecords defines the deterministic total order used by Compare:
// both attribute collections are projected to name-sorted (name, value)
// pairs and compared lexicographically, names before values. A shorter
// collection that is a prefix of the longer orders first. Values of
// differing or unorderable kinds yield TYPE_MISMATCH.
func compareRecords(st *attrStore, other Record) (int, error) {
	a := sortedPairs(st.pairs())
	b := make([]Field, 0, other.Len())
	for name, value := range other.All() {
		b = append(b, Field{Name: name, Value: value})
	}
	b = sortedPairs(b)

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i].Name, b[i].Name); c != 0 {
			return c, nil
		}
		c, err := compareValues(a[i].Name, a[i].Value, b[i].Value)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}

	switch {
	case len(a) < len(b):
		return -1, nil
	case len(a) > len(b):
		return 1, nil
	default:
		return 0, nil
	}
}

func sortedPairs(pairs []Field) []Field {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs
}

// compareValues orders two attribute values. Strings, numbers (int64 and
// float64 compare across kinds), and bools are orderable; anything else is
// a TYPE_MISMATCH naming the attribute. Integer comparison is exact at
// every magnitude; routing it through float64 would collapse distinct
// values above 2^53.
func compareValues(attr string, x, y any) (int, error) {
	switch xv := x.(type) {
	case string:
		if yv, ok := y.(string); ok {
			return strings.Compare(xv, yv), nil
		}
	case int64:
		switch yv := y.(type) {
		case int64:
			switch {
			case xv < yv:
				return -1, nil
			case xv > yv:
				return 1, nil
			default:
				return 0, nil
			}
		case float64:
			return compareIntFloat(xv, yv), nil
		}
	case float64:
		switch yv := y.(type) {
		case int64:
			return -compareIntFloat(yv, xv), nil
		case float64:
			switch {
			case xv < yv:
				return -1, nil
			case xv > yv:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case bool:
		if yv, ok := y.(bool); ok {
			switch {
			case xv == yv:
				return 0, nil
			case !xv:
				return -1, nil
			default:
				return 1, nil
			}
		}
	default:
		return 0, &Error{
			Code:    ErrCodeTypeMismatch,
			Attr:    attr,
			Op:      "compare",
			Actual:  TypeOf(x),
			Message: fmt.Sprintf("value of type %s is not orderable", TypeOf(x)),
		}
	}
	return 0, &Error{
		Code:    ErrCodeTypeMismatch,
		Attr:    attr,
		Op:      "compare",
		Actual:  TypeOf(y),
		Message: fmt.Sprintf("cannot order %s against %s", TypeOf(x), TypeOf(y)),
	}
}

// compareIntFloat orders an int64 against a float64 without converting the
// integer to float64 (lossy above 2^53). The float's integer part is
// compared exactly; a surviving fractional part breaks the tie.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= maxInt64Float: // 2^63; every int64 is below it
		return -1
	case f < math.MinInt64: // -2^63 is exactly representable
		return 1
	}
	t := math.Trunc(f)
	ti := int64(t)
	switch {
	case i < ti:
		return -1
	case i > ti:
		return 1
	case f > t: // same integer part, f carries a positive fraction
		return -1
	case f < t:
		return 1
	default:
		return 0
	}
}

// maxInt64Float is the smallest float64 not representable as int64.
const maxInt64Float = float64(1 << 63)
