package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLine matches a signature date such as "13/09/2020" or "13/ 09/2020".
var dateLine = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d{1,2})\s*/\s*(\d{4})$`)

type signature struct {
	Date   string
	Author string
}

// parseSignature extracts the closing date and author from a sutra body.
// The last valid date line wins. The author is the nearest non-empty line
// above it, accepted only when it stands alone as a short line.
func parseSignature(content string) signature {
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		date, ok := normalizeDate(strings.TrimSpace(lines[i]))
		if !ok {
			continue
		}
		return signature{Date: date, Author: authorAbove(lines, i)}
	}
	return signature{}
}

func normalizeDate(s string) (string, bool) {
	m := dateLine.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), true
}

func authorAbove(lines []string, dateIdx int) string {
	j := dateIdx - 1
	for j >= 0 && strings.TrimSpace(lines[j]) == "" {
		j--
	}
	if j < 0 {
		return ""
	}
	candidate := strings.TrimSpace(lines[j])
	// A signature stands alone; a line continuing a stanza is verse.
	if j > 0 && strings.TrimSpace(lines[j-1]) != "" {
		return ""
	}
	if len(strings.Fields(candidate)) > 4 || strings.ContainsAny(candidate[len(candidate)-1:], ".,;:!?") {
		return ""
	}
	return candidate
}
