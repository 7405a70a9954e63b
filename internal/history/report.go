// Package history assembles pick-history reports.
package history

import (
	"context"
	"time"

	"github.com/verte-zerg/datewheel/internal/model"
	"github.com/verte-zerg/datewheel/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Picks       []model.PickRecord
	MonthCounts []model.MonthCount
	Total       int
	First       time.Time
	Last        time.Time
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	picks, err := st.ListPicks(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	total := len(picks)
	if cfg.Last > 0 && len(picks) > cfg.Last {
		picks = picks[len(picks)-cfg.Last:]
	}

	counts, err := st.CountByMonth(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Picks:       picks,
		MonthCounts: counts,
		Total:       total,
	}
	if len(picks) > 0 {
		report.First = picks[0].PickedAt
		report.Last = picks[len(picks)-1].PickedAt
	}
	return report, nil
}
