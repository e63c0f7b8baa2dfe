package evaluation

import (
	"strings"
	"time"

	"github.com/doanvu/school-eval-api/internal/models"
)

// Criteria are conjunctive; zero values mean "no constraint". Search is a
// case-insensitive substring match across student name, teacher name and the
// type label (OR within, AND with the rest).
type Criteria struct {
	Search  string
	Student string
	Teacher string
	Type    string
	Date    string
}

func (c Criteria) Empty() bool {
	return c.Search == "" && c.Student == "" && c.Teacher == "" && c.Type == "" && c.Date == ""
}

// dateLayouts accepted for normalization, in match order.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// NormalizeDate reduces a date string to YYYY-MM-DD. ok is false when no
// layout parses; callers must fail closed on that.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Filter returns the records matching the criteria. Pure: the input slice is
// never mutated, and running it twice yields the same result. With no
// criteria the input is returned as is.
func Filter(records []models.EvaluationView, c Criteria) []models.EvaluationView {
	if c.Empty() {
		return records
	}

	wantDate, wantDateOK := "", true
	if c.Date != "" {
		wantDate, wantDateOK = NormalizeDate(c.Date)
	}

	out := make([]models.EvaluationView, 0, len(records))
	for _, r := range records {
		if !matches(r, c, wantDate, wantDateOK) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r models.EvaluationView, c Criteria, wantDate string, wantDateOK bool) bool {
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		hit := strings.Contains(strings.ToLower(r.StudentName), needle) ||
			strings.Contains(strings.ToLower(r.TeacherName), needle) ||
			strings.Contains(strings.ToLower(r.Type.Label()), needle) ||
			strings.Contains(strings.ToLower(string(r.Type)), needle)
		if !hit {
			return false
		}
	}
	if c.Student != "" && r.StudentName != c.Student {
		return false
	}
	if c.Teacher != "" && r.TeacherName != c.Teacher {
		return false
	}
	if c.Type != "" && string(r.Type) != c.Type && r.Type.Label() != c.Type {
		return false
	}
	if c.Date != "" {
		// an unparseable criteria date matches nothing, an unparseable
		// record date is excluded: fail closed both ways
		if !wantDateOK {
			return false
		}
		got, ok := NormalizeDate(r.Date)
		if !ok || got != wantDate {
			return false
		}
	}
	return true
}
