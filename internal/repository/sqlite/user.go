package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/user-records/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// rowQueryer is satisfied by both *sql.Conn and *sql.Tx.
type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Insert stores u and returns the row read back by its generated ID, so the
// result reflects exactly what SQLite persisted.
func (r *UserRepository) Insert(ctx context.Context, u domain.UserBase) (*domain.UserWithID, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	var stored *domain.UserWithID
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (name, age) VALUES (?, ?) RETURNING id`,
			u.Name, u.Age,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		user, err := getUser(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("reread user %d after insert: %w", id, err)
		}
		if err := user.Validate(); err != nil {
			return fmt.Errorf("stored user %d: %w", id, err)
		}
		stored = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.UserWithID, error) {
	var user *domain.UserWithID
	err := r.db.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		user, err = getUser(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every stored user ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]domain.UserWithID, error) {
	var users []domain.UserWithID
	err := r.db.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT id, name, age FROM users ORDER BY id`)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var u domain.UserWithID
			if err := rows.Scan(&u.ID, &u.Name, &u.Age); err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func getUser(ctx context.Context, q rowQueryer, id int64) (*domain.UserWithID, error) {
	user := &domain.UserWithID{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, age FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}
