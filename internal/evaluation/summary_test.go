package evaluation

import (
	"testing"

	"github.com/doanvu/school-eval-api/internal/models"
)

func TestSummarizeEmptyLedger(t *testing.T) {
	sum := Summarize(nil)
	if sum.FinalStudyPoint != 100 || sum.FinalDisciplinePoint != 100 {
		t.Fatalf("empty ledger must stand at 100/100, got %+v", sum)
	}
	sum = Summarize([]models.EvaluationView{})
	if sum.FinalStudyPoint != 100 || sum.FinalDisciplinePoint != 100 {
		t.Fatalf("empty slice must stand at 100/100, got %+v", sum)
	}
}

func TestSummarizeIsAdditiveFold(t *testing.T) {
	records := []models.EvaluationView{
		{StudyPoint: 2, DisciplinePoint: 0},
		{StudyPoint: -1, DisciplinePoint: -2},
		{StudyPoint: 0, DisciplinePoint: 5},
		{StudyPoint: -3, DisciplinePoint: -3},
	}
	wantStudy, wantDiscipline := 100, 100
	for _, r := range records {
		wantStudy += r.StudyPoint
		wantDiscipline += r.DisciplinePoint
	}

	sum := Summarize(records)
	if sum.FinalStudyPoint != wantStudy {
		t.Fatalf("study: want %d, got %d", wantStudy, sum.FinalStudyPoint)
	}
	if sum.FinalDisciplinePoint != wantDiscipline {
		t.Fatalf("discipline: want %d, got %d", wantDiscipline, sum.FinalDisciplinePoint)
	}
}

func TestSummarizeAfterDelete(t *testing.T) {
	records := []models.EvaluationView{
		{ID: 1, StudyPoint: 2, DisciplinePoint: 1},
		{ID: 2, StudyPoint: -4, DisciplinePoint: -2},
		{ID: 3, StudyPoint: 7, DisciplinePoint: 0},
	}
	before := Summarize(records)

	// drop record 2 and recompute
	var rest []models.EvaluationView
	for _, r := range records {
		if r.ID != 2 {
			rest = append(rest, r)
		}
	}
	after := Summarize(rest)

	if after.FinalStudyPoint != before.FinalStudyPoint-(-4) {
		t.Fatalf("study after delete: want %d, got %d", before.FinalStudyPoint+4, after.FinalStudyPoint)
	}
	if after.FinalDisciplinePoint != before.FinalDisciplinePoint-(-2) {
		t.Fatalf("discipline after delete: want %d, got %d", before.FinalDisciplinePoint+2, after.FinalDisciplinePoint)
	}
}

func TestSummarizeBothAxesOnOneRecord(t *testing.T) {
	// a disruptive-but-engaged event moves both axes at once
	sum := Summarize([]models.EvaluationView{
		{Type: models.EvalDiscipline, StudyPoint: 1, DisciplinePoint: -2},
	})
	if sum.FinalStudyPoint != 101 || sum.FinalDisciplinePoint != 98 {
		t.Fatalf("got %+v", sum)
	}
}
