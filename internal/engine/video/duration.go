package video

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoDurationRE matches the subset of ISO-8601 durations providers emit
// (P[nD]T[nH][nM][nS], seconds may carry a fraction).
var isoDurationRE = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.\d+)?S)?)?$`)

// SecondsToISO8601 converts a duration in seconds to an ISO-8601 duration.
// Zero becomes PT0S; negative input yields "".
func SecondsToISO8601(seconds int) string {
	if seconds < 0 {
		return ""
	}
	if seconds == 0 {
		return "PT0S"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	var b strings.Builder
	b.WriteString("PT")
	if h > 0 {
		b.WriteString(strconv.Itoa(h) + "H")
	}
	if m > 0 {
		b.WriteString(strconv.Itoa(m) + "M")
	}
	if s > 0 {
		b.WriteString(strconv.Itoa(s) + "S")
	}
	return b.String()
}

// ParseISO8601Duration returns the number of whole seconds in an ISO-8601 duration.
func ParseISO8601Duration(iso string) (int, bool) {
	iso = strings.TrimSpace(iso)
	m := isoDurationRE.FindStringSubmatch(iso)
	if m == nil || iso == "P" || iso == "PT" {
		return 0, false
	}
	parts := make([]int, 4)
	for i := range parts {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		parts[i] = n
	}
	return parts[0]*86400 + parts[1]*3600 + parts[2]*60 + parts[3], true
}

// FormatDuration renders an ISO-8601 duration for display: "m:ss" below one
// hour, "h:mm:ss" otherwise. Input that is not an ISO-8601 duration is
// returned unchanged.
func FormatDuration(iso string) string {
	total, ok := ParseISO8601Duration(iso)
	if !ok {
		return iso
	}
	return FormatSeconds(total)
}

// FormatSeconds renders seconds as "m:ss" or "h:mm:ss".
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// isoDateLayout is the UTC layout YouTube uses for publishedAt.
const isoDateLayout = "2006-01-02T15:04:05Z"

var providerDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
}

// NormalizeDate converts a provider date ("2016-01-01 01:43:02" for Vimeo,
// RFC 3339 for YouTube) to ISO-8601 UTC. Unparseable input is returned as-is.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range providerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoDateLayout)
		}
	}
	return s
}
