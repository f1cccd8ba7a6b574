package vectordb

// DocumentKind tells what part of a sutra a document holds.
type DocumentKind string

const (
	// KindTitle is a leaf without a body; only its title is indexed.
	KindTitle DocumentKind = "title"
	// KindStanza is one stanza of a sutra body, prefixed by the title.
	KindStanza DocumentKind = "stanza"
)

// Document represents a piece of content to be stored and searched.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured information about a document.
type DocumentMetadata struct {
	SutraID string
	Title   string
	GroupID string
	Kind    DocumentKind
	Stanza  int
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter allows narrowing search results by metadata fields.
type SearchFilter struct {
	GroupID *string
	Kind    *DocumentKind
}

// Hit is a semantic match folded to one entry per sutra.
type Hit struct {
	SutraID    string  `json:"id"`
	Title      string  `json:"title"`
	GroupID    string  `json:"group_id"`
	Similarity float32 `json:"similarity"`
	Excerpt    string  `json:"excerpt"`
}
