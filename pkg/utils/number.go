package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[\$]?[\d,]+\.?\d*`)

// ExtractNumber returns the first numeric value found in the given text,
// tolerating currency symbols and thousands separators. The second return
// value reports whether a number was found.
func ExtractNumber(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	cleaned := strings.NewReplacer("$", "", ",", "").Replace(match)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
