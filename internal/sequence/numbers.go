// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// isDash reports whether r separates the two ends of a numeric range.
// Documents arrive with plain hyphens as well as en and em dashes.
func isDash(r rune) bool {
	return r == '-' || r == '–' || r == '—'
}

// Numbers extracts citation numbers from text, left to right. A digit run
// followed by a dash and another digit run is an inclusive range and expands
// ("3-6" yields 3 4 5 6); a range whose start exceeds its end is discarded;
// any other digit run is taken as-is. Duplicates are kept and order is
// preserved. The scanner is explicit rather than a regex chain so the range
// edge cases stay independently testable.
func Numbers(text string) []int {
	var out []int
	runes := []rune(text)
	n := len(runes)

	digitAt := func(i int) bool { return i < n && runes[i] >= '0' && runes[i] <= '9' }
	skipSpace := func(i int) int {
		for i < n && unicode.IsSpace(runes[i]) {
			i++
		}
		return i
	}

	i := 0
	readInt := func() int {
		start := i
		for digitAt(i) {
			i++
		}
		v, _ := strconv.Atoi(string(runes[start:i]))
		return v
	}

	for i < n {
		if !digitAt(i) {
			i++
			continue
		}
		first := readInt()

		j := skipSpace(i)
		if j < n && isDash(runes[j]) {
			k := skipSpace(j + 1)
			if digitAt(k) {
				i = k
				second := readInt()
				if first <= second {
					for v := first; v <= second; v++ {
						out = append(out, v)
					}
				}
				continue
			}
		}
		out = append(out, first)
	}
	return out
}

// FormatNumbers renders a sorted number list in the compact citation form:
// runs of three or more consecutive integers collapse to "a-b", runs of
// exactly two stay "a,b", singletons stand alone, and runs join with ", ".
// For contiguous ranges it is the lossless inverse of Numbers.
func FormatNumbers(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	var parts []string
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		switch j - i {
		case 0:
			parts = append(parts, strconv.Itoa(nums[i]))
		case 1:
			parts = append(parts, fmt.Sprintf("%d,%d", nums[i], nums[j]))
		default:
			parts = append(parts, fmt.Sprintf("%d-%d", nums[i], nums[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
