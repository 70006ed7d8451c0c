package ui

import (
	"net/http"
	"sort"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// requestSession reads the session ID without creating a new session; the
// report view never starts one.
func requestSession(r *http.Request) (core.SessionID, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	id, err := core.ParseSessionID(cookie.Value)
	if err != nil {
		return "", false
	}
	return id, true
}

// AnswerRow is one question/answer line of the report
type AnswerRow struct {
	Feature string
	Answer  string
}

// handleResult renders the report view from the hand-off store
func (a *App) handleResult(w http.ResponseWriter, r *http.Request) {
	id, ok := requestSession(r)
	if !ok {
		a.renderTemplate(w, http.StatusOK, "no_result.html", nil)
		return
	}
	result, err := a.results.GetResult(r.Context(), id)
	if err != nil {
		a.renderTemplate(w, http.StatusOK, "no_result.html", nil)
		return
	}

	decision := result.Label
	if decision == "" {
		decision = "Unlikely Endometriosis"
		if result.Pred == 1 {
			decision = "Possible Endometriosis"
		}
	}

	answers := make([]AnswerRow, 0, len(result.Answers))
	for k, v := range result.Answers {
		answers = append(answers, AnswerRow{Feature: string(k), Answer: v})
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].Feature < answers[j].Feature })

	a.renderTemplate(w, http.StatusOK, "result.html", map[string]interface{}{
		"Result":       result,
		"Decision":     decision,
		"Answers":      answers,
		"Contributors": a.topContributors(r, id),
	})
}

// topContributors asks the explanation service for the strongest features
// behind the stored vector. The report degrades to no contributor section
// when the call fails; explanation problems never block the report.
func (a *App) topContributors(r *http.Request, id core.SessionID) []ports.Contributor {
	if a.explainer == nil {
		return nil
	}
	vector, err := a.results.GetVector(r.Context(), id)
	if err != nil {
		a.logger.Warn("loading vector for session %s: %v", id, err)
		return nil
	}
	contributors, err := a.explainer.Explain(r.Context(), vector, 10)
	if err != nil {
		a.logger.Warn("explanation call failed for session %s: %v", id, err)
		return nil
	}
	return contributors
}

// handleResultExport downloads the report as a spreadsheet
func (a *App) handleResultExport(w http.ResponseWriter, r *http.Request) {
	id, ok := requestSession(r)
	if !ok {
		http.Error(w, "no survey result found", http.StatusNotFound)
		return
	}
	result, err := a.results.GetResult(r.Context(), id)
	if err != nil {
		http.Error(w, "no survey result found", http.StatusNotFound)
		return
	}
	vector, err := a.results.GetVector(r.Context(), id)
	if err != nil {
		a.logger.Warn("loading vector for session %s: %v", id, err)
	}

	book, err := buildReportWorkbook(result, vector)
	if err != nil {
		a.logger.Error("building report workbook: %v", err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="endometriosis_survey_report.xlsx"`)
	if err := book.Write(w); err != nil {
		a.logger.Error("writing report workbook: %v", err)
	}
}
