// Package natsort orders strings so that embedded numbers compare by value:
// "Q2" < "Q2.1" < "Q10", where a plain byte sort gives "Q10" < "Q2" < "Q2.1".
package natsort

import (
	"slices"
	"strings"
)

// Split partitions s into maximal runs that are alternately all digits and all non-digits,
// preserving order. "Q2.10a" becomes ["Q", "2", ".", "10", "a"]. Only ASCII digits start
// a digit run, so every digit run parses as an integer.
func Split(s string) []string {
	if s == "" {
		return nil
	}

	var runs []string
	start := 0
	inDigits := isDigit(s[0])
	for i := 1; i < len(s); i++ {
		if d := isDigit(s[i]); d != inDigits {
			runs = append(runs, s[start:i])
			start = i
			inDigits = d
		}
	}
	return append(runs, s[start:])
}

// Compare returns -1, 0 or +1. Runs are compared pairwise up to the shorter length:
// numerically when both are digit runs, by bytes otherwise. Digit runs of equal value
// ("07" and "7") are equal and comparison moves on to the next run. When every compared
// run is equal, the string with fewer runs sorts first. Strings that still tie but differ
// only in leading zeros are ordered by bytes so distinct strings never compare equal.
func Compare(a, b string) int {
	ra, rb := Split(a), Split(b)

	n := min(len(ra), len(rb))
	for i := 0; i < n; i++ {
		if c := compareRun(ra[i], rb[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(ra) < len(rb):
		return -1
	case len(ra) > len(rb):
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts ss in natural order.
func Sort(ss []string) {
	slices.SortStableFunc(ss, Compare)
}

// SortFunc stably sorts items by the natural order of key(item).
func SortFunc[T any](items []T, key func(T) string) {
	slices.SortStableFunc(items, func(x, y T) int {
		return Compare(key(x), key(y))
	})
}

func compareRun(x, y string) int {
	if isNumber(x) && isNumber(y) {
		return compareNumeric(x, y)
	}
	return strings.Compare(x, y)
}

// compareNumeric compares two ASCII digit runs by value without converting them,
// so runs longer than an int64 still order correctly.
func compareNumeric(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumber(s string) bool {
	return s != "" && isDigit(s[0])
}
