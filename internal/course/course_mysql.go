package course

import (
	"context"
	"encoding/json"

	"github.com/learnhub/learnhub/internal/domain"
	"github.com/learnhub/learnhub/internal/infrastructure/driver"
)

type CourseRepository struct {
	Conn driver.ITransactionalDB
}

var _ domain.CourseRepository = &CourseRepository{}

func NewCourseRepository(Conn driver.ITransactionalDB) *CourseRepository {
	return &CourseRepository{
		Conn: Conn,
	}
}

// GetCourseByID load the course document. The content tree is stored as a JSON
// column and decoded into the tagged variant, legacy flat documents simply
// leave weeks empty.
func (repo *CourseRepository) GetCourseByID(ctx context.Context, courseID string) (*domain.CourseModel, error) {
	conn := repo.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    id, title, content
FROM
    course
WHERE
    id = $1
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		item := new(domain.CourseModel)
		var raw []byte
		if err := rows.Scan(&item.ID, &item.Title, &raw); err != nil {
			return nil, err
		}
		content := new(domain.CourseContent)
		if err := json.Unmarshal(raw, content); err != nil {
			return nil, err
		}
		item.Content = content
		return item, nil
	}
	return nil, nil
}
