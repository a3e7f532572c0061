package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности.
const uniqueViolation = "23505"

// getByField выбирает одну запись по значению поля.
func getByField[T any](ctx context.Context, db *sqlx.DB, table, field string, value interface{}, notFoundErr error) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, field)

	if err := db.GetContext(ctx, &entity, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by %s from %s: %w", field, table, err)
	}

	return &entity, nil
}

// getByID выбирает запись по первичному ключу.
func getByID[T any](ctx context.Context, db *sqlx.DB, table, id string, notFoundErr error) (*T, error) {
	return getByField[T](ctx, db, table, "id", id, notFoundErr)
}

// deleteByID удаляет запись и возвращает notFoundErr, если удалять было нечего.
func deleteByID(ctx context.Context, db *sqlx.DB, table, id string, notFoundErr error) error {
	res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: rows affected: %w", table, err)
	}
	if affected == 0 {
		return notFoundErr
	}
	return nil
}

// isUniqueViolation сообщает, что ошибка вызвана нарушением уникального индекса.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// updateBuilder собирает SET-часть запроса частичного обновления.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// build возвращает запрос UPDATE ... RETURNING * и его аргументы; id идёт последним параметром.
func (b *updateBuilder) build(table, id string) (string, []interface{}) {
	args := append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING *",
		table, strings.Join(b.sets, ", "), len(args))
	return query, args
}
