package workouts

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	lineSplitRe   = regexp.MustCompile(`\r?\n`)
	intPrefixRe   = regexp.MustCompile(`^[+-]?[0-9]+`)
	floatPrefixRe = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)
)

// ParseSets reads one "<reps> <weight>" pair per line, separated by commas
// and/or whitespace. Lines that do not yield reps > 0 and weight >= 0 are
// dropped. Tokens after the second are ignored.
func ParseSets(text string) []Set {
	sets := []Set{}
	for _, line := range lineSplitRe.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(tokens) < 2 {
			continue
		}

		reps, ok := ParseIntPrefix(tokens[0])
		if !ok || reps <= 0 {
			continue
		}
		weight, ok := ParseFloatPrefix(tokens[1])
		if !ok || weight < 0 || math.IsInf(weight, 0) {
			continue
		}

		sets = append(sets, Set{Reps: reps, Weight: weight})
	}
	return sets
}

// ParseIntPrefix reads the leading decimal integer of s, ignoring whatever
// follows it ("5x" -> 5, "5.9" -> 5). Leading whitespace is skipped.
func ParseIntPrefix(s string) (int, bool) {
	m := intPrefixRe.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloatPrefix reads the leading decimal number of s ("225.5kg" -> 225.5).
func ParseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := floatPrefixRe.FindString(s)
	if m == "" {
		switch {
		case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
			return math.Inf(1), true
		case strings.HasPrefix(s, "-Infinity"):
			return math.Inf(-1), true
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range, strconv still returns +-Inf
		return v, math.IsInf(v, 0)
	}
	return v, true
}
