package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NissesSenap/plotstyle/internal/style"
)

// SaveStyle inserts a style or replaces all settings of an existing one
func (s *SQLiteStorage) SaveStyle(ctx context.Context, rec *StyleRecord, table *style.Table) (err error) {
	// One transaction so readers never see a half-replaced style
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	styleQuery := `
        INSERT INTO styles (name, source, imported_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(name) DO UPDATE SET
            source = excluded.source,
            imported_at = CURRENT_TIMESTAMP`
	if _, err = tx.ExecContext(ctx, styleQuery, rec.Name, rec.Source); err != nil {
		return err
	}

	var styleID int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM styles WHERE name = ?`, rec.Name).Scan(&styleID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM settings WHERE style_id = ?`, styleID); err != nil {
		return err
	}

	settingQuery := `
        INSERT INTO settings (style_id, key, value, comment, line, position)
        VALUES (?, ?, ?, ?, ?, ?)`
	for i, setting := range table.Settings() {
		if _, err = tx.ExecContext(ctx, settingQuery,
			styleID,
			setting.Key,
			setting.Value,
			setting.Comment,
			setting.Line,
			i); err != nil {
			return fmt.Errorf("saving %s: %w", setting.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	rec.ID = styleID
	rec.SettingCount = table.Len()
	return nil
}

// GetStyle rebuilds a stored style table in its original order
func (s *SQLiteStorage) GetStyle(ctx context.Context, name string) (*style.Table, error) {
	info, err := s.GetStyleInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	query := `SELECT key, value, comment, line
              FROM settings
              WHERE style_id = ?
              ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query, info.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings, err := scanSettings(rows)
	if err != nil {
		return nil, err
	}
	return style.New(settings)
}

// GetStyleInfo returns the record of a stored style
func (s *SQLiteStorage) GetStyleInfo(ctx context.Context, name string) (*StyleRecord, error) {
	query := `SELECT s.id, s.name, s.source, CAST(strftime('%s', s.imported_at) AS INTEGER),
                     (SELECT COUNT(*) FROM settings WHERE style_id = s.id)
              FROM styles s
              WHERE s.name = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListStyles returns all stored styles ordered by name
func (s *SQLiteStorage) ListStyles(ctx context.Context) ([]*StyleRecord, error) {
	query := `SELECT s.id, s.name, s.source, CAST(strftime('%s', s.imported_at) AS INTEGER),
                     (SELECT COUNT(*) FROM settings WHERE style_id = s.id)
              FROM styles s
              ORDER BY s.name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*StyleRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteStyle removes a style and its settings
func (s *SQLiteStorage) DeleteStyle(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so don't rely on the cascade
	settingsQuery := `
        DELETE FROM settings
        WHERE style_id IN (SELECT id FROM styles WHERE name = ?)`
	if _, err := tx.ExecContext(ctx, settingsQuery, name); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM styles WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrStyleNotFound, name)
	}

	return tx.Commit()
}

// GetSetting returns a single setting of a stored style
func (s *SQLiteStorage) GetSetting(ctx context.Context, name, key string) (style.Setting, error) {
	info, err := s.GetStyleInfo(ctx, name)
	if err != nil {
		return style.Setting{}, err
	}

	query := `SELECT key, value, comment, line
              FROM settings
              WHERE style_id = ? AND key = ?`

	var setting style.Setting
	err = s.db.QueryRowContext(ctx, query, info.ID, key).
		Scan(&setting.Key, &setting.Value, &setting.Comment, &setting.Line)
	if errors.Is(err, sql.ErrNoRows) {
		return style.Setting{}, fmt.Errorf("%w: %s in style %s", style.ErrNotFound, key, name)
	}
	return setting, err
}

// FindSettings returns the value of key in every style that sets it,
// keyed by style name
func (s *SQLiteStorage) FindSettings(ctx context.Context, key string) (map[string]string, error) {
	query := `SELECT st.name, se.value
              FROM settings se
              JOIN styles st ON st.id = se.style_id
              WHERE se.key = ?`

	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		values[name] = value
	}
	return values, rows.Err()
}

// Helper function to scan settings from rows
func scanSettings(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]style.Setting, error) {
	var settings []style.Setting
	for rows.Next() {
		var setting style.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.Comment, &setting.Line); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

// scanRecord reads the columns id, name, source, imported_at (unix seconds)
// and the setting count
func scanRecord(row interface{ Scan(...interface{}) error }) (*StyleRecord, error) {
	rec := &StyleRecord{}
	var importedAt int64
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Source, &importedAt, &rec.SettingCount); err != nil {
		return nil, err
	}
	rec.ImportedAt = time.Unix(importedAt, 0).UTC()
	return rec, nil
}
