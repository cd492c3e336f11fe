package storage

func (s *SQLiteStorage) migrate() error {
	schema := `
    CREATE TABLE IF NOT EXISTS styles (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        source TEXT NOT NULL DEFAULT '',
        imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS settings (
        style_id INTEGER NOT NULL REFERENCES styles(id) ON DELETE CASCADE,
        key TEXT NOT NULL,
        value TEXT NOT NULL,
        comment TEXT NOT NULL DEFAULT '',
        line INTEGER NOT NULL DEFAULT 0,
        position INTEGER NOT NULL,
        PRIMARY KEY (style_id, key)
    );

    CREATE INDEX IF NOT EXISTS idx_settings_key
        ON settings(key);
    CREATE INDEX IF NOT EXISTS idx_settings_position
        ON settings(style_id, position);
    `

	_, err := s.db.Exec(schema)
	return err
}
