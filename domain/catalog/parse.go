package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// questionDoc mirrors the questions.json question shape. IDs are authored
// both as numbers and as strings, so the field is decoded loosely.
type questionDoc struct {
	ID        json.RawMessage `json:"id"`
	Feature   string          `json:"feature"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Options   []string        `json:"options"`
	Hint      string          `json:"hint"`
	Min       *float64        `json:"min"`
	Max       *float64        `json:"max"`
	Step      *float64        `json:"step"`
	NextIfYes string          `json:"next_if_yes"`
}

type pageDoc struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []questionDoc `json:"questions"`
}

type catalogDoc struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Pages       []pageDoc     `json:"pages"`
	Questions   []questionDoc `json:"questions"`
}

// Parse decodes a catalog document. A document with a top-level flat
// questions array and no pages is treated as an implicit one-page catalog
// named after the document's own title, default "Survey".
func Parse(raw []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("malformed document: %v", err))
	}

	pages := doc.Pages
	if len(pages) == 0 {
		if len(doc.Questions) == 0 {
			return nil, core.NewCatalogLoadError("document has neither pages nor questions")
		}
		title := doc.Title
		if title == "" {
			title = "Survey"
		}
		pages = []pageDoc{{ID: "one", Title: title, Questions: doc.Questions}}
	}

	c := &Catalog{
		Title:       doc.Title,
		Description: doc.Description,
		Pages:       make([]Page, 0, len(pages)),
		index:       make(map[core.PageID]int, len(pages)),
	}
	for i, pd := range pages {
		page := Page{
			ID:          core.PageID(pd.ID),
			Title:       pd.Title,
			Description: pd.Description,
			Questions:   make([]Question, 0, len(pd.Questions)),
		}
		for _, qd := range pd.Questions {
			page.Questions = append(page.Questions, qd.toQuestion())
		}
		c.Pages = append(c.Pages, page)
		c.index[page.ID] = i
	}
	return c, nil
}

func (qd questionDoc) toQuestion() Question {
	return Question{
		ID:        decodeID(qd.ID),
		Kind:      ParseKind(qd.Type),
		Feature:   qd.Feature,
		Name:      qd.Name,
		Text:      qd.Text,
		Options:   qd.Options,
		Hint:      qd.Hint,
		Min:       qd.Min,
		Max:       qd.Max,
		Step:      qd.Step,
		NextIfYes: core.PageID(qd.NextIfYes),
	}
}

// decodeID accepts string or numeric question ids
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}
