package ui

import (
	"errors"
	"net/http"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
)

// sessionCookie carries the wizard session ID. It is a browser-session
// cookie: closing the browser abandons the wizard, like the original
// sessionStorage hand-off.
const sessionCookie = "endo_session"

// handleHome renders the landing page
func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	cat := a.engine.Catalog()
	title := cat.Title
	if title == "" {
		title = "Symptom Survey"
	}
	a.renderTemplate(w, http.StatusOK, "home.html", map[string]interface{}{
		"Title":       title,
		"Description": renderMarkdown(cat.Description),
	})
}

// currentState loads the wizard state for the request's session, creating a
// fresh session (and cookie) when none exists yet.
func (a *App) currentState(w http.ResponseWriter, r *http.Request) (wizard.State, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := core.ParseSessionID(cookie.Value); err == nil {
			state, err := a.sessions.Get(r.Context(), id)
			if err == nil {
				return *state, nil
			}
			if !errors.Is(err, core.ErrSessionNotFound) {
				return wizard.State{}, err
			}
		}
	}

	state := wizard.NewState(core.NewSessionID())
	if err := a.sessions.Save(r.Context(), state); err != nil {
		return wizard.State{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    state.SessionID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return state, nil
}

// handleSurvey renders the page under the navigation cursor
func (a *App) handleSurvey(w http.ResponseWriter, r *http.Request) {
	state, err := a.currentState(w, r)
	if err != nil {
		a.logger.Error("loading wizard session: %v", err)
		http.Error(w, "failed to load wizard session", http.StatusInternalServerError)
		return
	}
	a.renderSurveyPage(w, state, "")
}

// handleSurveyAction performs exactly one transition per request: back,
// next, or submit. Validation failures re-render the same page with the
// message; only a fully successful submit leaves the wizard.
func (a *App) handleSurveyAction(w http.ResponseWriter, r *http.Request) {
	state, err := a.currentState(w, r)
	if err != nil {
		a.logger.Error("loading wizard session: %v", err)
		http.Error(w, "failed to load wizard session", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	message := ""
	switch r.PostFormValue("action") {
	case "back":
		state = a.engine.Back(state, r.PostForm)

	case "submit":
		state, err = a.engine.Submit(state, r.PostForm)
		if err == nil {
			if saveErr := a.sessions.Save(r.Context(), state); saveErr != nil {
				a.logger.Error("saving wizard session %s: %v", state.SessionID, saveErr)
			}
			if _, err = a.submissions.Submit(r.Context(), state); err == nil {
				http.Redirect(w, r, "/result", http.StatusSeeOther)
				return
			}
		}
		message = err.Error()

	default: // next, including auto-advancing radio clicks
		state, err = a.engine.Next(state, r.PostForm)
		if err != nil {
			message = err.Error()
		}
	}

	if err := a.sessions.Save(r.Context(), state); err != nil {
		a.logger.Error("saving wizard session %s: %v", state.SessionID, err)
		http.Error(w, "failed to save wizard session", http.StatusInternalServerError)
		return
	}
	a.renderSurveyPage(w, state, message)
}

func (a *App) renderSurveyPage(w http.ResponseWriter, state wizard.State, message string) {
	view := buildPageView(a.engine.CurrentPage(state), state.Answers)
	view.Progress = a.engine.Progress(state)
	view.ShowBack = state.PageIndex > 0
	view.ShowNext = !a.engine.IsLastPage(state)
	view.ShowSubmit = a.engine.IsLastPage(state)
	view.Message = message

	status := http.StatusOK
	if message != "" {
		status = http.StatusUnprocessableEntity
	}
	a.renderTemplate(w, status, "survey.html", view)
}
