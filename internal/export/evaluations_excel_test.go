package export

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/doanvu/school-eval-api/internal/models"
)

func TestEvaluationsExcelLayout(t *testing.T) {
	views := []models.EvaluationView{
		{Date: "2024-03-05", StudentName: "Nguyễn Văn An", TeacherName: "Trần Thị Hoa", ClassName: "10A1", Type: models.EvalStudy, StudyPoint: 2},
		{Date: "2024-03-06", StudentName: "Lê Thị Bình", TeacherName: "Trần Thị Hoa", ClassName: "10A1", Type: models.EvalDiscipline, StudyPoint: -1, DisciplinePoint: -2},
	}

	reader, err := EvaluationsExcel(views)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(reader)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows("Evaluations")
	if err != nil {
		t.Fatal(err)
	}

	// header + records + standing row
	if len(rows) != len(views)+2 {
		t.Fatalf("want %d rows, got %d", len(views)+2, len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Student" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	last := rows[len(rows)-1]
	if last[5] != "101" || last[6] != "98" {
		t.Fatalf("standing row must fold the deltas over the baseline: %v", last)
	}
}

func TestEvaluationsExcelEmptyLedger(t *testing.T) {
	reader, err := EvaluationsExcel(nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(reader)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows("Evaluations")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("empty ledger still gets header and standing rows, got %d", len(rows))
	}
	if rows[1][5] != "100" || rows[1][6] != "100" {
		t.Fatalf("empty standing must be the baseline: %v", rows[1])
	}
}

func TestBuildLedgerFilename(t *testing.T) {
	got := BuildLedgerFilename(`10A1/em: "An"`)
	for _, bad := range []rune{'/', ':', '"'} {
		for _, r := range got {
			if r == bad {
				t.Fatalf("invalid char %q survived in %q", bad, got)
			}
		}
	}
}
