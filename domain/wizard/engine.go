package wizard

import (
	"net/url"
	"strings"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// Engine is the navigation and branching state machine. It owns no mutable
// state of its own: every transition takes the session state and the posted
// form values, and returns the updated state. At most one page transition
// happens per call.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates an engine over a loaded catalog
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Catalog returns the catalog the engine drives
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// CurrentPage returns the page under the navigation cursor
func (e *Engine) CurrentPage(s State) catalog.Page {
	return e.cat.Page(s.PageIndex)
}

// IsLastPage reports whether the cursor is on the final page
func (e *Engine) IsLastPage(s State) bool {
	return s.PageIndex == e.cat.PageCount()-1
}

// Progress returns wizard completion as a 0-100 percentage
func (e *Engine) Progress(s State) int {
	return (s.PageIndex + 1) * 100 / e.cat.PageCount()
}

// Back captures the current page's inputs without validating and retreats
// the cursor by one page. Back navigation is never gated.
func (e *Engine) Back(s State, form url.Values) State {
	e.readPage(s, form)
	if s.PageIndex > 0 {
		s.PageIndex--
	}
	return s
}

// Next captures and validates the current page, then applies branching. On a
// validation failure the returned state is unchanged apart from the captured
// inputs, and the error carries the unanswered question's text.
func (e *Engine) Next(s State, form url.Values) (State, error) {
	e.readPage(s, form)
	if err := e.validatePage(s); err != nil {
		return s, err
	}
	s.PageIndex = e.advance(s)
	return s, nil
}

// Submit captures and validates the final page, leaving the cursor in place.
// The caller hands the validated state to the submission controller; on any
// failure the wizard stays on the last page.
func (e *Engine) Submit(s State, form url.Values) (State, error) {
	e.readPage(s, form)
	if !e.IsLastPage(s) {
		return s, core.ErrNotLastPage
	}
	if err := e.validatePage(s); err != nil {
		return s, err
	}
	return s, nil
}

// readPage copies every posted value for the current page's questions into
// the answer store. Untouched sliders still post their control value, so
// their default contributes.
func (e *Engine) readPage(s State, form url.Values) {
	for _, q := range e.CurrentPage(s).Questions {
		key := q.FeatureKey()
		if form.Has(string(key)) {
			s.Answers[key] = form.Get(string(key))
		}
	}
}

// validatePage is the per-page gate: every question must have a non-empty
// stored value. Questions of unknown kind render no widget and are excluded,
// otherwise the wizard could never pass the page.
func (e *Engine) validatePage(s State) error {
	for _, q := range e.CurrentPage(s).Questions {
		if q.Kind == catalog.KindUnknown {
			continue
		}
		if v, ok := s.Answers[q.FeatureKey()]; !ok || v == "" {
			return core.NewValidationError(q.Text)
		}
	}
	return nil
}

// advance resolves the next cursor position after a successful validation,
// applying skip-logic driven by the page's first radio question:
//
//   - answer "no" with a valid next_if_yes target T jumps to the page
//     immediately after T, skipping the severity page that is only relevant
//     on "yes"; if that position is past the end the jump does not fire
//   - answer "yes" jumps directly to T
//   - anything else, including a next_if_yes naming a nonexistent page,
//     degrades to advancing by one
func (e *Engine) advance(s State) int {
	last := e.cat.PageCount() - 1
	page := e.CurrentPage(s)

	if first, ok := page.FirstQuestion(); ok && first.Kind == catalog.KindRadio && first.NextIfYes != "" {
		if target, ok := e.cat.PageIndex(first.NextIfYes); ok {
			selected := strings.ToLower(strings.TrimSpace(s.Answers[first.FeatureKey()]))
			switch selected {
			case "no":
				if target+1 <= last {
					return target + 1
				}
			case "yes":
				return target
			}
		}
	}

	if s.PageIndex < last {
		return s.PageIndex + 1
	}
	return s.PageIndex
}
