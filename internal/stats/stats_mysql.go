package stats

import (
	"context"
	"time"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/driver"
)

type StatsRepository struct {
	Conn driver.ITransactionalDB
}

var _ domain.StatsRepository = &StatsRepository{}

func NewStatsRepository(Conn driver.ITransactionalDB) *StatsRepository {
	return &StatsRepository{
		Conn: Conn,
	}
}

// GetWatchTimeInWeekByUser per-day watched seconds for the week containing at.
// Each lesson contributes its cumulative watermark to the day of its last
// update, so a lesson watched across several days counts toward the most
// recent one. The chart reads as "position reached, by last-activity day",
// not a per-day delta.
func (repo *StatsRepository) GetWatchTimeInWeekByUser(ctx context.Context, user *domain.UserModel, at *time.Time) ([]*domain.WatchTimeModel, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    WEEKDAY(updated_at),
    SUM(watched_seconds) watched_seconds,
    DATE(updated_at) d
FROM
    lesson_progress
WHERE
    YEARWEEK(updated_at, 1) = YEARWEEK($1, 1)
        AND user_id = $2
GROUP BY d, WEEKDAY(updated_at)
ORDER BY d ASC;
	`, at, user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.WatchTimeModel
	for rows.Next() {
		item := new(domain.WatchTimeModel)
		item.UserID = user.ID
		err := rows.Scan(&item.Weekday, &item.WatchedSeconds, &item.TS)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}
