package catalog

import (
	"fmt"
	"strings"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// Kind is the closed set of question control kinds. Keeping this an
// enumeration (rather than dispatching on the raw catalog string) gives
// exhaustive switches in the renderer and normalizer.
type Kind int

const (
	KindUnknown Kind = iota
	KindRadio
	KindScale10
	KindNumber
	KindSelect
	KindText
)

// ParseKind maps a catalog "type" string onto a Kind. Unrecognized strings
// map to KindUnknown; the wizard skips such questions instead of failing.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radio":
		return KindRadio
	case "scale10":
		return KindScale10
	case "number":
		return KindNumber
	case "select":
		return KindSelect
	case "text":
		return KindText
	default:
		return KindUnknown
	}
}

// String returns the catalog spelling of the kind
func (k Kind) String() string {
	switch k {
	case KindRadio:
		return "radio"
	case KindScale10:
		return "scale10"
	case KindNumber:
		return "number"
	case KindSelect:
		return "select"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Question is a single catalog question. Exactly one feature key is derived
// per question and used consistently for capture and normalization.
type Question struct {
	ID      string
	Kind    Kind
	Feature string
	Name    string
	Text    string
	Options []string
	Hint    string

	// Numeric bounds for number controls, when the catalog declares them.
	Min  *float64
	Max  *float64
	Step *float64

	// NextIfYes names the branch target page. Only meaningful on the first
	// question of a page, and only for radio questions.
	NextIfYes core.PageID
}

// FeatureKey resolves the effective feature key: feature, then name, then
// "Q" + id.
func (q Question) FeatureKey() core.FeatureKey {
	if q.Feature != "" {
		return core.FeatureKey(q.Feature)
	}
	if q.Name != "" {
		return core.FeatureKey(q.Name)
	}
	return core.FeatureKey(fmt.Sprintf("Q%s", q.ID))
}

// RadioOptions returns the question's options, defaulting to No/Yes for
// radio questions authored without an explicit option list.
func (q Question) RadioOptions() []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	return []string{"No", "Yes"}
}

// Page is an ordered group of questions shown together
type Page struct {
	ID          core.PageID
	Title       string
	Description string
	Questions   []Question
}

// FirstQuestion returns the page's first question, which drives branching
func (p Page) FirstQuestion() (Question, bool) {
	if len(p.Questions) == 0 {
		return Question{}, false
	}
	return p.Questions[0], true
}

// Catalog is the immutable, ordered set of pages driving one wizard session
type Catalog struct {
	Title       string
	Description string
	Pages       []Page

	index map[core.PageID]int
}

// PageCount returns the number of pages
func (c *Catalog) PageCount() int {
	return len(c.Pages)
}

// Page returns the page at index i
func (c *Catalog) Page(i int) Page {
	return c.Pages[i]
}

// PageIndex resolves a page id to its position in catalog order
func (c *Catalog) PageIndex(id core.PageID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// TypeMap maps every feature key to its declared question kind. It is
// computed once after load, before any normalization.
type TypeMap map[core.FeatureKey]Kind

// TypeMap derives the feature-key → kind lookup across all pages. On a
// duplicate feature key the last occurrence wins silently; duplicate catalog
// authoring is not an engine error.
func (c *Catalog) TypeMap() TypeMap {
	m := make(TypeMap)
	for _, p := range c.Pages {
		for _, q := range p.Questions {
			m[q.FeatureKey()] = q.Kind
		}
	}
	return m
}
