package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeFIPS converts any numeric, numeric-string, or float-string county
// identifier to a fixed 5-character zero-padded decimal string, e.g.
// "13121.0" -> "13121", "1073" -> "01073". Missing or unparseable values
// normalize to an empty string rather than failing; this function is applied
// at every boundary that emits or ingests county identifiers.
func NormalizeFIPS(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	// Float-string forms like "13121.0" are common when the source round-
	// tripped through a float column. Parse as float and truncate.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return ""
	}
	return fmt.Sprintf("%05d", int64(f))
}
