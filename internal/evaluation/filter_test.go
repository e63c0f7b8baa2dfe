package evaluation

import (
	"reflect"
	"testing"

	"github.com/doanvu/school-eval-api/internal/models"
)

func sampleViews() []models.EvaluationView {
	return []models.EvaluationView{
		{ID: 1, StudentName: "Nguyễn Văn An", TeacherName: "Trần Thị Hoa", Type: models.EvalStudy, Date: "2024-03-05"},
		{ID: 2, StudentName: "Lê Thị Bình", TeacherName: "Math Teacher", Type: models.EvalDiscipline, Date: "2024-03-06"},
		{ID: 3, StudentName: "Phạm Minh Châu", TeacherName: "Trần Thị Hoa", Type: models.EvalStudy, Date: "not-a-date"},
	}
}

func TestFilterNoCriteriaIsIdentity(t *testing.T) {
	in := sampleViews()
	out := Filter(in, Criteria{})
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("empty criteria must return the input unchanged")
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	out := Filter(sampleViews(), Criteria{Search: "MATH"})
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("want record 2, got %+v", out)
	}
	// search also covers the type label and student name
	out = Filter(sampleViews(), Criteria{Search: "study"})
	if len(out) != 2 {
		t.Fatalf("want the two study records, got %d", len(out))
	}
	out = Filter(sampleViews(), Criteria{Search: "châu"})
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("want record 3, got %+v", out)
	}
}

func TestFilterExactFields(t *testing.T) {
	out := Filter(sampleViews(), Criteria{Teacher: "Trần Thị Hoa", Type: "study"})
	if len(out) != 2 {
		t.Fatalf("want 2 records, got %d", len(out))
	}
	out = Filter(sampleViews(), Criteria{Student: "Lê Thị Bình", Type: "study"})
	if len(out) != 0 {
		t.Fatalf("conjunctive criteria must AND, got %+v", out)
	}
}

func TestFilterDateNormalization(t *testing.T) {
	out := Filter(sampleViews(), Criteria{Date: "2024-03-05"})
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("want record 1, got %+v", out)
	}
	// same day in an alternate layout normalizes to the same key
	out = Filter(sampleViews(), Criteria{Date: "05/03/2024"})
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("dd/mm/yyyy must normalize, got %+v", out)
	}
}

func TestFilterUnparseableDatesFailClosed(t *testing.T) {
	// record 3 carries a broken date: it may never match a date criterion
	out := Filter(sampleViews(), Criteria{Date: "2024-03-06"})
	for _, r := range out {
		if r.ID == 3 {
			t.Fatalf("record with unparseable date must be excluded")
		}
	}
	// a broken criteria date matches nothing at all
	out = Filter(sampleViews(), Criteria{Date: "garbage"})
	if len(out) != 0 {
		t.Fatalf("unparseable criteria date must match nothing, got %+v", out)
	}
}

func TestFilterIsRestartable(t *testing.T) {
	in := sampleViews()
	c := Criteria{Search: "trần"}
	first := Filter(in, c)
	second := Filter(in, c)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input and criteria must yield the same result")
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-05", "2024-03-05", true},
		{"2024-03-05T10:30:00Z", "2024-03-05", true},
		{"05/03/2024", "2024-03-05", true},
		{"2024-13-05", "", false},
		{"yesterday", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeDate(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
