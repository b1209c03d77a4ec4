package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gridiron-lab/nfl-data/internal/service"
)

// SeasonCache is the part of the service a refresh touches.
type SeasonCache interface {
	Invalidate(year int)
	Season(ctx context.Context, year int) (*service.Season, error)
}

// RefreshSeasons drops the cached seasons and rebuilds them so the next
// request does not pay for the upstream fetch. Call this after a seed or on
// the refresh schedule.
func RefreshSeasons(ctx context.Context, seasons SeasonCache, years []int, logger *slog.Logger) error {
	for _, y := range years {
		seasons.Invalidate(y)

		start := time.Now()
		season, err := seasons.Season(ctx, y)
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to rebuild season",
				"year", y, "duration", dur, "error", err)
			return fmt.Errorf("rebuild season %d: %w", y, err)
		}
		logger.Info("Rebuilt season", "year", y, "players", len(season.Players), "duration", dur)
	}
	return nil
}
