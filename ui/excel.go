package ui

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// buildReportWorkbook lays the stored result out as a two-sheet workbook:
// the summary with the response table, and the normalized feature vector
// that was actually scored.
func buildReportWorkbook(result *ports.SurveyResult, vector wizard.Vector) (*excelize.File, error) {
	book := excelize.NewFile()

	const summary = "Report"
	if err := book.SetSheetName(book.GetSheetName(0), summary); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Endometriosis Symptom Survey"},
		{},
		{"Predicted probability", fmt.Sprintf("%.1f%%", result.Prob1*100)},
		{"Model decision", result.Label},
		{"Submitted at", result.SubmittedAt.Time().Format("2006-01-02 15:04:05")},
		{},
		{"Question", "Response"},
	}

	features := make([]string, 0, len(result.Answers))
	for k := range result.Answers {
		features = append(features, string(k))
	}
	sort.Strings(features)
	for _, f := range features {
		rows = append(rows, []interface{}{f, result.Answers[core.FeatureKey(f)]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(summary, cell, &row); err != nil {
			return nil, err
		}
	}

	if len(vector) > 0 {
		const features = "Features"
		if _, err := book.NewSheet(features); err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(features, "A1", &[]interface{}{"Feature", "Value"}); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(vector))
		for k := range vector {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		for i, k := range keys {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			row := []interface{}{k, vector[core.FeatureKey(k)]}
			if err := book.SetSheetRow(features, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	return book, nil
}
