package ui

import (
	"testing"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// TestBuildReportWorkbook tests the exported spreadsheet layout
func TestBuildReportWorkbook(t *testing.T) {
	result := &ports.SurveyResult{
		Prediction: ports.Prediction{Prob1: 0.825, Pred: 1, Label: "Endometriosis"},
		Answers: wizard.Answers{
			"Pain":     "Yes",
			"Severity": "7",
		},
		SubmittedAt: core.Now(),
	}
	vector := wizard.Vector{"Pain": 1, "Severity": 0.7}

	book, err := buildReportWorkbook(result, vector)
	if err != nil {
		t.Fatalf("buildReportWorkbook failed: %v", err)
	}

	prob, err := book.GetCellValue("Report", "B3")
	if err != nil {
		t.Fatalf("Reading probability cell: %v", err)
	}
	if prob != "82.5%" {
		t.Errorf("Expected probability '82.5%%', got '%s'", prob)
	}

	decision, _ := book.GetCellValue("Report", "B4")
	if decision != "Endometriosis" {
		t.Errorf("Expected decision 'Endometriosis', got '%s'", decision)
	}

	// Answers are sorted below the Question/Response header on row 7
	first, _ := book.GetCellValue("Report", "A8")
	second, _ := book.GetCellValue("Report", "A9")
	if first != "Pain" || second != "Severity" {
		t.Errorf("Expected sorted answer rows, got '%s', '%s'", first, second)
	}

	feature, _ := book.GetCellValue("Features", "A2")
	if feature != "Pain" {
		t.Errorf("Expected vector sheet to list Pain first, got '%s'", feature)
	}
}

// TestBuildReportWorkbookNoVector tests export when the vector is missing
func TestBuildReportWorkbookNoVector(t *testing.T) {
	result := &ports.SurveyResult{
		Prediction:  ports.Prediction{Prob1: 0.3, Pred: 0, Label: "No Endometriosis"},
		Answers:     wizard.Answers{"Pain": "No"},
		SubmittedAt: core.Now(),
	}

	book, err := buildReportWorkbook(result, nil)
	if err != nil {
		t.Fatalf("buildReportWorkbook failed: %v", err)
	}

	if idx, _ := book.GetSheetIndex("Features"); idx != -1 {
		t.Error("Expected no Features sheet without a vector")
	}
}
