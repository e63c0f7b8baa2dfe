package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/doanvu/school-eval-api/internal/evaluation"
	"github.com/doanvu/school-eval-api/internal/models"
)

// EvaluationsExcel renders the ledger slice into one worksheet: header row,
// one row per record, and a standing row derived with the same fold the
// summary endpoints use.
func EvaluationsExcel(views []models.EvaluationView) (io.Reader, error) {
	f := excelize.NewFile()
	const sheet = "Evaluations"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	header := []any{"Date", "Student", "Teacher", "Class", "Type", "Study", "Discipline", "Content"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, v := range views {
		row := []any{v.Date, v.StudentName, v.TeacherName, v.ClassName, v.Type.Label(), v.StudyPoint, v.DisciplinePoint, v.Content}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	sum := evaluation.Summarize(views)
	totals := []any{"", "", "", "", "Standing", sum.FinalStudyPoint, sum.FinalDisciplinePoint, ""}
	cell := fmt.Sprintf("A%d", len(views)+2)
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return nil, err
	}

	if err := ApplyDefaultExcelFormatting(f, sheet); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
