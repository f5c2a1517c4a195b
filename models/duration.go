package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var durationToken = regexp.MustCompile(`(\d+)d|(\d+)h|(\d+)m`)

// StringToMinutes parses the textual duration format used for estimate and
// spentTime ("2d 4h 30m"). Missing units count as zero; an empty or
// unrecognized string parses to 0.
func StringToMinutes(s string) int {
	total := 0
	for _, m := range durationToken.FindAllStringSubmatch(s, -1) {
		if m[1] != "" {
			v, _ := strconv.Atoi(m[1])
			total += v * minutesPerDay
		}
		if m[2] != "" {
			v, _ := strconv.Atoi(m[2])
			total += v * 60
		}
		if m[3] != "" {
			v, _ := strconv.Atoi(m[3])
			total += v
		}
	}
	return total
}

// MinutesToString renders a minute count back into the "<d>d <h>h <m>m"
// form, dropping zero-valued units. Zero total renders as "0h".
func MinutesToString(totalMinutes int) string {
	d := totalMinutes / minutesPerDay
	h := (totalMinutes % minutesPerDay) / 60
	m := totalMinutes % 60

	var parts []string
	if d > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d))
	}
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if len(parts) == 0 {
		return "0h"
	}
	return strings.Join(parts, " ")
}
