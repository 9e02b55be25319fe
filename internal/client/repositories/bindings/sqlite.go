package bindings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amparo-app/amparo-cli/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, reminderID string) (string, error) {
	var notificationID string
	err := r.db.QueryRowContext(ctx,
		`SELECT notification_id FROM notification_bindings WHERE reminder_id = ?`, reminderID,
	).Scan(&notificationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get binding[%s]: %w", reminderID, err)
	}
	return notificationID, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, reminderID, notificationID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_bindings (reminder_id, notification_id) VALUES (?, ?)
		ON CONFLICT(reminder_id) DO UPDATE SET notification_id = excluded.notification_id
	`, reminderID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to set binding[%s]: %w", reminderID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, reminderID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notification_bindings WHERE reminder_id = ?`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to delete binding[%s]: %w", reminderID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT reminder_id, notification_id FROM notification_bindings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var reminderID, notificationID string
		if err := rows.Scan(&reminderID, &notificationID); err != nil {
			return nil, fmt.Errorf("failed to scan binding row: %w", err)
		}
		result[reminderID] = notificationID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate binding rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notification_bindings`)
	if err != nil {
		return fmt.Errorf("failed to clear bindings: %w", err)
	}
	return nil
}
