package catalog

import (
	"embed"
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed data/toc.yaml data/sutras.yaml
var dataFS embed.FS

// Catalog is the immutable, validated library content. It is safe for
// concurrent use.
type Catalog struct {
	groups []TocGroup
	leaves []TocEntry
	sutras map[string]Sutra

	groupIndex map[string]int // group id -> index in groups
	leafIndex  map[string]int // leaf id -> index in leaves
	leafGroup  map[string]int // leaf id -> index in groups
}

var loadDefault = sync.OnceValues(Load)

// Default returns the catalog built from the embedded data. The data is
// parsed and validated on first use only.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	toc, err := dataFS.ReadFile("data/toc.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded toc: %w", err)
	}
	sutras, err := dataFS.ReadFile("data/sutras.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded sutras: %w", err)
	}
	return Parse(toc, sutras)
}

// MustLoad is like Load but panics if the embedded data is invalid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Catalog from YAML documents shaped like the embedded
// data files.
func Parse(tocYAML, sutrasYAML []byte) (*Catalog, error) {
	var tf tocFile
	if err := yaml.Unmarshal(tocYAML, &tf); err != nil {
		return nil, fmt.Errorf("parsing toc: %w", err)
	}
	var sf sutraFile
	if err := yaml.Unmarshal(sutrasYAML, &sf); err != nil {
		return nil, fmt.Errorf("parsing sutras: %w", err)
	}
	return New(tf.Groups, sf.Sutras)
}

// New validates groups and sutras and returns the indexed catalog. Every
// problem found is reported in the returned error.
func New(groups []TocGroup, sutras []Sutra) (*Catalog, error) {
	c := &Catalog{
		groupIndex: make(map[string]int, len(groups)),
		leafIndex:  make(map[string]int),
		leafGroup:  make(map[string]int),
		sutras:     make(map[string]Sutra, len(sutras)),
	}

	var errs error
	seen := make(map[string]string) // id -> where it was first defined

	checkID := func(id, where string) bool {
		if id == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: empty id", where))
			return false
		}
		if !slug.IsSlug(id) {
			errs = multierr.Append(errs, fmt.Errorf("%s: id %q is not a slug", where, id))
		}
		if prev, dup := seen[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate id %q (first defined in %s)", where, id, prev))
			return false
		}
		seen[id] = where
		return true
	}

	for gi, g := range groups {
		where := fmt.Sprintf("group %d", gi+1)
		if checkID(g.ID, where) {
			c.groupIndex[g.ID] = len(c.groups)
		}
		if len(g.Items) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s (%s): no entries", where, g.ID))
		}
		items := make([]TocEntry, 0, len(g.Items))
		for ii, it := range g.Items {
			if !checkID(it.ID, fmt.Sprintf("%s entry %d", where, ii+1)) {
				continue
			}
			c.leafIndex[it.ID] = len(c.leaves)
			c.leafGroup[it.ID] = len(c.groups)
			c.leaves = append(c.leaves, it)
			items = append(items, it)
		}
		c.groups = append(c.groups, TocGroup{ID: g.ID, Title: g.Title, Items: items})
	}

	for _, s := range sutras {
		if s.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("sutra %q: empty id", s.Title))
			continue
		}
		if _, ok := c.leafIndex[s.ID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("sutra %q: no table-of-contents entry", s.ID))
			continue
		}
		if _, dup := c.sutras[s.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("sutra %q: defined twice", s.ID))
			continue
		}
		if s.Title == "" {
			errs = multierr.Append(errs, fmt.Errorf("sutra %q: empty title", s.ID))
		}
		if s.Date == "" || s.Author == "" {
			sig := parseSignature(s.Content)
			if s.Date == "" {
				s.Date = sig.Date
			}
			if s.Author == "" {
				s.Author = sig.Author
			}
		}
		c.sutras[s.ID] = s
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid catalog: %w", errs)
	}
	return c, nil
}

// Toc returns the table of contents in display order. The returned slice is
// a copy.
func (c *Catalog) Toc() []TocGroup {
	out := make([]TocGroup, len(c.groups))
	for i, g := range c.groups {
		out[i] = TocGroup{ID: g.ID, Title: g.Title, Items: append([]TocEntry(nil), g.Items...)}
	}
	return out
}

// Content returns the sutra for the given leaf id. The boolean is false when
// no body exists for id, which callers treat as "no content available".
func (c *Catalog) Content(id string) (Sutra, bool) {
	s, ok := c.sutras[id]
	return s, ok
}

// Entry returns the leaf with the given id and the group that holds it.
func (c *Catalog) Entry(id string) (TocEntry, TocGroup, bool) {
	li, ok := c.leafIndex[id]
	if !ok {
		return TocEntry{}, TocGroup{}, false
	}
	return c.leaves[li], c.groups[c.leafGroup[id]], true
}

// Group returns the group with the given id.
func (c *Catalog) Group(id string) (TocGroup, bool) {
	gi, ok := c.groupIndex[id]
	if !ok {
		return TocGroup{}, false
	}
	return c.groups[gi], true
}

// Leaves returns every leaf entry in display order.
func (c *Catalog) Leaves() []TocEntry {
	return append([]TocEntry(nil), c.leaves...)
}

// Len returns the number of leaf entries.
func (c *Catalog) Len() int { return len(c.leaves) }

// ContentCount returns the number of leaves that have a body.
func (c *Catalog) ContentCount() int { return len(c.sutras) }

// Neighbors returns the leaves before and after id in reading order. A zero
// TocEntry means there is no neighbor on that side.
func (c *Catalog) Neighbors(id string) (prev, next TocEntry, ok bool) {
	li, ok := c.leafIndex[id]
	if !ok {
		return TocEntry{}, TocEntry{}, false
	}
	if li > 0 {
		prev = c.leaves[li-1]
	}
	if li+1 < len(c.leaves) {
		next = c.leaves[li+1]
	}
	return prev, next, true
}

// Match returns the leaves whose id matches the doublestar glob pattern.
func (c *Catalog) Match(pattern string) ([]TocEntry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	var out []TocEntry
	for _, e := range c.leaves {
		if ok, _ := doublestar.Match(pattern, e.ID); ok {
			out = append(out, e)
		}
	}
	return out, nil
}
