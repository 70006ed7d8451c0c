package ui

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/gomarkdown/markdown"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
)

// OptionView is one choice of a radio or select control
type OptionView struct {
	ID       string
	Label    string
	Selected bool
}

// QuestionView is the widget model for one question. Kind selects the
// template block; unknown kinds produce no view at all.
type QuestionView struct {
	Kind    string
	Name    string
	Text    string
	Hint    string
	Value   string
	Options []OptionView
	Min     string
	Max     string
	Step    string
}

// PageView is everything the survey template needs for one wizard page
type PageView struct {
	Title       string
	Description template.HTML
	Questions   []QuestionView
	Progress    int
	ShowBack    bool
	ShowNext    bool
	ShowSubmit  bool
	Message     string
}

// buildPageView renders a page definition plus the current answers into the
// widget tree. Previously stored raw values pre-populate each control; an
// untouched scale10 slider shows its default of 5.
func buildPageView(page catalog.Page, answers wizard.Answers) PageView {
	view := PageView{
		Title:       page.Title,
		Description: renderMarkdown(page.Description),
	}
	for _, q := range page.Questions {
		if qv, ok := buildQuestionView(q, answers); ok {
			view.Questions = append(view.Questions, qv)
		}
	}
	return view
}

func buildQuestionView(q catalog.Question, answers wizard.Answers) (QuestionView, bool) {
	name := string(q.FeatureKey())
	saved := answers[q.FeatureKey()]

	qv := QuestionView{
		Kind: q.Kind.String(),
		Name: name,
		Text: q.Text,
		Hint: q.Hint,
	}

	switch q.Kind {
	case catalog.KindRadio:
		for i, opt := range q.RadioOptions() {
			qv.Options = append(qv.Options, OptionView{
				ID:       fmt.Sprintf("%s_%d", name, i),
				Label:    opt,
				Selected: saved == opt,
			})
		}
	case catalog.KindScale10:
		qv.Value = "5"
		if saved != "" {
			qv.Value = saved
		}
		qv.Min, qv.Max, qv.Step = "1", "10", "1"
	case catalog.KindNumber:
		qv.Value = saved
		qv.Min = formatBound(q.Min)
		qv.Max = formatBound(q.Max)
		qv.Step = formatBound(q.Step)
	case catalog.KindSelect:
		for i, opt := range q.Options {
			qv.Options = append(qv.Options, OptionView{
				ID:       fmt.Sprintf("%s_%d", name, i),
				Label:    opt,
				Selected: saved == opt,
			})
		}
	case catalog.KindText:
		qv.Value = saved
	default:
		// No widget for an unrecognized kind
		return QuestionView{}, false
	}
	return qv, true
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// renderMarkdown turns catalog description text into HTML. Descriptions are
// authored by the catalog owner, not end users.
func renderMarkdown(text string) template.HTML {
	if text == "" {
		return ""
	}
	return template.HTML(markdown.ToHTML([]byte(text), nil, nil))
}
