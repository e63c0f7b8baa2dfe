package evaluation

import "github.com/doanvu/school-eval-api/internal/models"

// Baseline is the good-standing starting value for both axes. A student with
// an empty ledger stands at 100/100.
const Baseline = 100

// Summarize folds a ledger slice into a standing. Pure and additive: no
// averaging, no normalization. Scope (global vs per-class) is decided by
// whoever produced the slice, never here.
func Summarize(records []models.EvaluationView) models.ScoreSummary {
	sum := models.ScoreSummary{
		FinalStudyPoint:      Baseline,
		FinalDisciplinePoint: Baseline,
	}
	for _, r := range records {
		sum.FinalStudyPoint += r.StudyPoint
		sum.FinalDisciplinePoint += r.DisciplinePoint
	}
	return sum
}
