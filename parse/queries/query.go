package queries

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jharrilim/pg-export/db"
)

// QueryAll выполняет запрос и сканирует каждую строку в T.
// Ошибки возвращаются как db.Error с текстом запроса и аргументами.
func QueryAll[T any](
	ctx context.Context,
	exec db.Executor,
	scan func(s pgx.Rows, q *T) error,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Error{
			Err:     err,
			Message: "query",
			Query:   query,
			Args:    args,
		}
	}
	defer rows.Close()

	var results []T

	var rowNum int
	for rows.Next() {
		rowNum++
		var value T
		if err := scan(rows, &value); err != nil {
			return nil, db.Error{
				Err:     err,
				Message: fmt.Sprintf("scan %d", rowNum),
				Query:   query,
				Args:    args,
			}
		}
		results = append(results, value)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Error{
			Err:     err,
			Message: "read rows",
			Query:   query,
			Args:    args,
		}
	}
	return results, nil
}
