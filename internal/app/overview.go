package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/ports"
)

// CollectYear builds the overview for year by reading every day from repo.
func CollectYear(ctx context.Context, repo ports.LogRepository, year int, skipFirstLine bool) (domain.YearOverview, error) {
	o := domain.NewYearOverview(year)
	for month := 1; month <= 12; month++ {
		for day := 1; day <= domain.DaysInMonth(year, month); day++ {
			if err := ctx.Err(); err != nil {
				return o, err
			}
			date := domain.Date{Year: year, Month: month, Day: day}
			entry, ok, err := repo.Read(ctx, date)
			if err != nil {
				return o, fmt.Errorf("read %s: %w", date, err)
			}
			if !ok {
				o.Collect(date, nil, skipFirstLine)
				continue
			}
			o.Collect(date, &entry, skipFirstLine)
		}
	}
	return o, nil
}
