package user

import (
	"context"
	"database/sql"

	"github.com/asetku/marketplace/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const getUserBase = `SELECT id, name, email, role, password_hash, created_at, updated_at FROM user WHERE true`

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
