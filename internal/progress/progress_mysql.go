package progress

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/driver"
	"github.com/learnhub/learnhub/internal/infrastructure/uuid"
)

type ProgressRepository struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.ProgressRepository = &ProgressRepository{}

func NewProgressRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *ProgressRepository {
	return &ProgressRepository{Conn, UUIDGenerator}
}

// UpsertProgress write the watch state for (user, lesson), creating the row on
// first report. watched_seconds and lesson_title are overwritten with whatever
// the caller sent, completed only ever flips to 1 (a false write does not
// un-complete a lesson).
func (repo *ProgressRepository) UpsertProgress(ctx context.Context, post *domain.ProgressModel) (*domain.ProgressModel, error) {
	conn := repo.Conn
	// generate id, ignored by the update branch
	UUIDGenerator := repo.UUIDGenerator
	if uuid, err := UUIDGenerator.Generate(); err == nil {
		post.ID = uuid
	} else {
		return nil, err
	}

	_, err := conn.ExecContext(ctx, `
INSERT INTO lesson_progress(id, user_id, lesson_id, lesson_title, watched_seconds, completed)
VALUES($1,$2,$3,$4,$5,$6)
ON DUPLICATE KEY UPDATE
    lesson_title = VALUES(lesson_title),
    watched_seconds = VALUES(watched_seconds),
    completed = completed OR VALUES(completed)
	`, post.ID, post.UserID, post.LessonID, post.LessonTitle, post.WatchedSeconds, post.Completed)
	if err, ok := err.(*mysql.MySQLError); ok && err.Number == 1062 {
		// should not happen given the upsert contract
		return nil, domain.ErrProgressConflict
	}
	if err != nil {
		return nil, err
	}

	owner := &domain.UserModel{ID: post.UserID}
	return repo.GetProgressByUserAndLesson(ctx, owner, post.LessonID)
}

// GetProgressByUserAndLesson single record lookup, nil when absent
func (repo *ProgressRepository) GetProgressByUserAndLesson(ctx context.Context, user *domain.UserModel, lessonID string) (*domain.ProgressModel, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    id, user_id, lesson_id, lesson_title, watched_seconds, completed, updated_at
FROM
    lesson_progress
WHERE
    user_id = $1 AND lesson_id = $2
	`, user.ID, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		item := new(domain.ProgressModel)
		if err := rows.Scan(&item.ID, &item.UserID, &item.LessonID, &item.LessonTitle,
			&item.WatchedSeconds, &item.Completed, &item.UpdatedAt); err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, nil
}

// GetProgressByUser all records of a learner, projected for dashboards
func (repo *ProgressRepository) GetProgressByUser(ctx context.Context, user *domain.UserModel) ([]*domain.ProgressModel, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    lesson_id, lesson_title, watched_seconds, completed, updated_at
FROM
    lesson_progress
WHERE
    user_id = $1
	`, user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ProgressModel
	for rows.Next() {
		item := new(domain.ProgressModel)
		item.UserID = user.ID
		err := rows.Scan(&item.LessonID, &item.LessonTitle, &item.WatchedSeconds, &item.Completed, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}
