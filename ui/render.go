package ui

import (
	"bytes"
	"net/http"
)

// renderTemplate executes a template into a buffer first, so a rendering
// error becomes a clean 500 instead of a half-written page.
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("template error for %s: %v", templateName, err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Error("writing template response: %v", err)
	}
}
