package client

import (
	"context"
	"sync"

	"github.com/doanvu/school-eval-api/internal/models"
)

// Scope identifies which slice of the ledger a summary is derived over.
// ClassID zero means the student's global standing.
type Scope struct {
	StudentID int64
	ClassID   int64
}

// Fetcher is the summary-returning slice of Client.
type Fetcher interface {
	Summary(ctx context.Context, studentID int64) (models.ScoreSummary, error)
	ClassSummary(ctx context.Context, studentID, classID int64) (models.ScoreSummary, error)
}

// SummaryView holds the standing currently shown for one dashboard widget.
// Rapid scope switches leave requests racing; only the response belonging to
// the most recent request may update the view. A stale response wins
// nothing, even when it arrives last.
type SummaryView struct {
	fetcher Fetcher

	mu      sync.Mutex
	gen     uint64
	scope   Scope
	current models.ScoreSummary
	loaded  bool
}

func NewSummaryView(f Fetcher) *SummaryView {
	return &SummaryView{fetcher: f}
}

// Refresh fetches the summary for the scope and applies it unless a newer
// Refresh started while this one was in flight. The generation is captured
// before the network call and compared after, which is the whole invariant.
func (v *SummaryView) Refresh(ctx context.Context, scope Scope) (models.ScoreSummary, error) {
	v.mu.Lock()
	v.gen++
	myGen := v.gen
	v.scope = scope
	v.mu.Unlock()

	var (
		sum models.ScoreSummary
		err error
	)
	if scope.ClassID != 0 {
		sum, err = v.fetcher.ClassSummary(ctx, scope.StudentID, scope.ClassID)
	} else {
		sum, err = v.fetcher.Summary(ctx, scope.StudentID)
	}
	if err != nil {
		return models.ScoreSummary{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if myGen == v.gen {
		v.current = sum
		v.loaded = true
	}
	return sum, nil
}

// Current returns the standing on display, false before the first applied
// refresh.
func (v *SummaryView) Current() (models.ScoreSummary, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.loaded
}

// ScopeShown reports which scope the displayed value belongs to.
func (v *SummaryView) ScopeShown() Scope {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scope
}
