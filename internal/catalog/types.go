package catalog

// TocEntry is a leaf of the table of contents. Its ID is the key used to
// look up the sutra body.
type TocEntry struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// TocGroup is a top-level table-of-contents heading holding an ordered list
// of leaf entries.
type TocGroup struct {
	ID    string     `yaml:"id" json:"id"`
	Title string     `yaml:"title" json:"title"`
	Items []TocEntry `yaml:"items" json:"items"`
}

// Sutra is the full text of one leaf entry.
type Sutra struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
	Date    string `yaml:"date,omitempty" json:"date,omitempty"`
	Author  string `yaml:"author,omitempty" json:"author,omitempty"`
}

// MatchField reports where a search query matched.
type MatchField string

const (
	FieldNone    MatchField = ""
	FieldTitle   MatchField = "title"
	FieldContent MatchField = "content"
)

// Match is one search hit, reported in table-of-contents order.
type Match struct {
	Entry      TocEntry   `json:"entry"`
	GroupID    string     `json:"group_id"`
	GroupTitle string     `json:"group_title"`
	Field      MatchField `json:"field,omitempty"`
	Snippet    string     `json:"snippet,omitempty"`
}

type tocFile struct {
	Groups []TocGroup `yaml:"groups"`
}

type sutraFile struct {
	Sutras []Sutra `yaml:"sutras"`
}
