package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a UI language of the library.
type Language string

const (
	Vietnamese Language = "vi"
	English    Language = "en"
)

// DefaultLanguage is used when no language is configured or requested.
const DefaultLanguage = Vietnamese

// ParseLanguage accepts "vi" or "en" (any case, BCP 47 region suffixes
// allowed). An empty string yields DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "vi":
		return Vietnamese, nil
	case "en":
		return English, nil
	}
	return "", fmt.Errorf("unsupported language %q: must be vi or en", s)
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Vietnamese
}

// Toggle switches between Vietnamese and English.
func (l Language) Toggle() Language {
	if l == Vietnamese {
		return English
	}
	return Vietnamese
}

// Labels are the translated UI strings of the library page.
type Labels struct {
	ReturnToHome      string `json:"return_to_home"`
	Library           string `json:"library"`
	Subtitle          string `json:"subtitle"`
	TableOfContents   string `json:"table_of_contents"`
	SelectContent     string `json:"select_content"`
	NoContent         string `json:"no_content"`
	SearchPlaceholder string `json:"search_placeholder"`
	NoResults         string `json:"no_results"`
	Previous          string `json:"previous"`
	Next              string `json:"next"`
	SwitchLanguage    string `json:"switch_language"`
}

var translations = map[Language]Labels{
	Vietnamese: {
		ReturnToHome:      "Trở về Trang Chủ",
		Library:           "THƯ VIỆN",
		Subtitle:          "Kho Tàng Tri Thức và Trí Tuệ",
		TableOfContents:   "Mục Lục",
		SelectContent:     "Chọn một mục để đọc nội dung",
		NoContent:         "Nội dung đang được cập nhật",
		SearchPlaceholder: "Tìm kiếm...",
		NoResults:         "Không tìm thấy kết quả",
		Previous:          "Bài trước",
		Next:              "Bài sau",
		SwitchLanguage:    "English",
	},
	English: {
		ReturnToHome:      "Return to Home",
		Library:           "LIBRARY",
		Subtitle:          "Treasury of Knowledge and Wisdom",
		TableOfContents:   "Table of Contents",
		SelectContent:     "Select a section to read content",
		NoContent:         "Content is being updated",
		SearchPlaceholder: "Search...",
		NoResults:         "No results found",
		Previous:          "Previous",
		Next:              "Next",
		SwitchLanguage:    "Tiếng Việt",
	},
}

// Translations returns the labels for l, falling back to Vietnamese.
func Translations(l Language) Labels {
	if t, ok := translations[l]; ok {
		return t
	}
	return translations[DefaultLanguage]
}
