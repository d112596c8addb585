// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package pressure extracts blood-pressure readings from normalized
// utterances. The extractor is purely syntactic: range checks happen at
// the storage boundary, and an utterance without a reading is not an
// error, it just lets the next interpreter have a go.
package pressure

import (
	"regexp"
	"strconv"
	"strings"
)

// Reading is a syntactically extracted measurement. Pulse is nil when
// the utterance carried no third number.
type Reading struct {
	Systolic  int
	Diastolic int
	Pulse     *int
}

var separators = strings.NewReplacer(",", " ", "/", " на ", "-", " ")

// Supported phrasings: "120 на 80", "давление 120 80", "120/80",
// "ад 120 на 80 пульс 70", "давление 120 80 70". The first pattern
// requires the spoken joiner, the second accepts merely adjacent
// numbers. Group 3 holds a pulse announced by keyword, group 4 a bare
// trailing number.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:давление|ад)?\s*(\d{2,3})\s*на\s*(\d{2,3})(?:\s*(?:пульс|пульса)\s*(\d{2,3})|\s+(\d{2,3}))?`),
	regexp.MustCompile(`(?:давление|ад)?\s*(\d{2,3})\s+(\d{2,3})(?:\s*(?:пульс|пульса)\s*(\d{2,3})|\s+(\d{2,3}))?`),
}

// Parse pulls a reading out of a normalized utterance. The second
// return value reports whether anything was found.
func Parse(text string) (Reading, bool) {
	text = separators.Replace(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")

	var m []string
	for _, re := range patterns {
		if m = re.FindStringSubmatch(text); m != nil {
			break
		}
	}
	if m == nil {
		return Reading{}, false
	}

	systolic, _ := strconv.Atoi(m[1])
	diastolic, _ := strconv.Atoi(m[2])

	r := Reading{Systolic: systolic, Diastolic: diastolic}
	if pulseStr := firstNonEmpty(m[3], m[4]); pulseStr != "" {
		pulse, _ := strconv.Atoi(pulseStr)
		r.Pulse = &pulse
	}
	return r, true
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
