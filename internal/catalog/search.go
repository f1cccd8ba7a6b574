package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EmptyQueryPolicy decides what an empty (or blank) query returns.
type EmptyQueryPolicy string

const (
	EmptyQueryNone EmptyQueryPolicy = "none"
	EmptyQueryAll  EmptyQueryPolicy = "all"
)

// SearchOptions tunes Search.
type SearchOptions struct {
	// IncludeBody also matches against sutra bodies, not only titles.
	IncludeBody bool
	// EmptyQuery is the policy for blank queries. Zero value means none.
	EmptyQuery EmptyQueryPolicy
	// Limit caps the number of matches when positive.
	Limit int
	// Within restricts candidates to leaf ids matching this glob.
	Within string
}

const snippetMaxRunes = 160

// Search performs a case- and diacritic-insensitive substring search over
// leaf titles and, optionally, bodies. Matches come back in reading order.
// The only error is an invalid Within pattern.
func (c *Catalog) Search(query string, opts SearchOptions) ([]Match, error) {
	if opts.Within != "" && !doublestar.ValidatePattern(opts.Within) {
		return nil, fmt.Errorf("invalid pattern %q: %w", opts.Within, doublestar.ErrBadPattern)
	}

	needle := Fold(strings.TrimSpace(query))
	if needle == "" && opts.EmptyQuery != EmptyQueryAll {
		return nil, nil
	}

	var out []Match
	for _, e := range c.leaves {
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		if opts.Within != "" {
			if ok, _ := doublestar.Match(opts.Within, e.ID); !ok {
				continue
			}
		}

		g := c.groups[c.leafGroup[e.ID]]
		m := Match{Entry: e, GroupID: g.ID, GroupTitle: g.Title}

		if needle == "" {
			out = append(out, m)
			continue
		}

		s, hasBody := c.sutras[e.ID]
		switch {
		case strings.Contains(Fold(e.Title), needle),
			hasBody && strings.Contains(Fold(s.Title), needle):
			m.Field = FieldTitle
		case opts.IncludeBody && hasBody:
			line, ok := matchingLine(s.Content, needle)
			if !ok {
				continue
			}
			m.Field = FieldContent
			m.Snippet = truncateRunes(line, snippetMaxRunes)
		default:
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Fold lowercases s and strips Vietnamese diacritics so that "Tâm" and
// "tam" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.ReplaceAll(folded, "đ", "d")
}

func matchingLine(content, needle string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(Fold(line), needle) {
			return strings.TrimSpace(line), true
		}
	}
	// The needle may span a line break.
	if strings.Contains(Fold(strings.Join(strings.Fields(content), " ")), needle) {
		return strings.TrimSpace(strings.SplitN(content, "\n", 2)[0]), true
	}
	return "", false
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
