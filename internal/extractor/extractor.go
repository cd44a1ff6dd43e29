// Package extractor parses the (H, P, E) micro-format embedded in the
// free-text rating columns of the hazard dataset.
//
// Grammar: any occurrence of `<letter> '=' <integer>` where <letter> is one
// of H, P or E (case-sensitive), with arbitrary whitespace around the '='.
// The input is scanned left to right and later matches for the same letter
// overwrite earlier ones. Letters outside {H, P, E} and malformed tokens are
// ignored, never an error.
package extractor

import (
	"regexp"
	"strconv"
)

var pattern = regexp.MustCompile(`([HPE])\s*=\s*(\d+)`)

// Triple holds the extracted value per impact class. A nil field means the
// letter never appeared in the input; zero is a valid extracted value.
type Triple struct {
	H *int
	P *int
	E *int
}

// Extract scans text for H/P/E assignments and returns the last value seen
// for each letter. Pure; the input is never modified.
func Extract(text string) Triple {
	var t Triple
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			// digits-only match, overflow is the only way here; skip quietly
			continue
		}
		v := n
		switch m[1] {
		case "H":
			t.H = &v
		case "P":
			t.P = &v
		case "E":
			t.E = &v
		}
	}
	return t
}
