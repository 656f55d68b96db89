// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Item is an opaque product identifier. It holds either an integer or a
// string; the zero value is the integer 0.
//
// Items are totally ordered: every integer sorts before every string,
// integers compare numerically and strings compare byte-wise.
type Item struct {
	str   string
	num   int64
	isStr bool
}

// IntItem returns an integer item.
func IntItem(v int64) Item {
	return Item{num: v}
}

// StringItem returns a string item.
func StringItem(s string) Item {
	return Item{str: s, isStr: true}
}

// IsString reports whether the item holds a string identifier.
func (i Item) IsString() bool {
	return i.isStr
}

// Int returns the integer value and true for integer items.
func (i Item) Int() (int64, bool) {
	if i.isStr {
		return 0, false
	}
	return i.num, true
}

// Compare returns -1, 0 or +1 depending on whether i sorts before, equal to,
// or after o.
func (i Item) Compare(o Item) int {
	switch {
	case !i.isStr && o.isStr:
		return -1
	case i.isStr && !o.isStr:
		return 1
	case i.isStr:
		return strings.Compare(i.str, o.str)
	case i.num < o.num:
		return -1
	case i.num > o.num:
		return 1
	default:
		return 0
	}
}

// Less reports whether i sorts strictly before o.
func (i Item) Less(o Item) bool {
	return i.Compare(o) < 0
}

// String returns the identifier in human-readable form.
func (i Item) String() string {
	if i.isStr {
		return i.str
	}
	return strconv.FormatInt(i.num, 10)
}

// appendKey appends an unambiguous encoding of the item to b.
// Integer and string items never collide, and the encoding of a sequence of
// items is prefix-free.
func (i Item) appendKey(b []byte) []byte {
	if i.isStr {
		b = append(b, 's')
		b = strconv.AppendInt(b, int64(len(i.str)), 10)
		b = append(b, ':')
		b = append(b, i.str...)
		return b
	}
	b = append(b, 'i')
	b = strconv.AppendInt(b, i.num, 10)
	return append(b, ';')
}

// MarshalJSON encodes integer items as JSON numbers and string items as
// JSON strings.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.isStr {
		return json.Marshal(i.str)
	}
	return strconv.AppendInt(nil, i.num, 10), nil
}

// UnmarshalJSON accepts a JSON string or an integral JSON number.
func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("item: empty identifier")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("item: %w", err)
		}
		*i = StringItem(s)
		return nil
	}

	item, err := ParseNumber(string(data))
	if err != nil {
		return err
	}
	*i = item
	return nil
}

// ParseNumber converts the textual form of a JSON number into an integer
// item. Values with a fractional part are rejected.
func ParseNumber(s string) (Item, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntItem(v), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Item{}, fmt.Errorf("item: invalid number %q: %w", s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return Item{}, fmt.Errorf("item: number %q is not an integer identifier", s)
	}
	return IntItem(int64(f)), nil
}
