package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/user-records/internal/domain"
)

// fileStore implements domain.FileStore using SQLite BLOBs.
type fileStore struct {
	db *DB
}

func (s *fileStore) Save(ctx context.Context, file *domain.StoredFile, data []byte) error {
	now := time.Now().UTC()
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO file_blobs (storage_key, filename, content_type, size, data, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			file.Key, file.Filename, file.ContentType, int64(len(data)), data, now,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save file blob: %w", err)
	}
	file.Size = int64(len(data))
	file.CreatedAt = now
	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) (*domain.StoredFile, []byte, error) {
	file := &domain.StoredFile{}
	var data []byte
	err := s.db.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			`SELECT storage_key, filename, content_type, size, data, created_at
			 FROM file_blobs WHERE storage_key = ?`, key,
		).Scan(&file.Key, &file.Filename, &file.ContentType, &file.Size, &data, &file.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get file blob: %w", err)
	}
	return file, data, nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	var affected int64
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM file_blobs WHERE storage_key = ?", key)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete file blob: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
