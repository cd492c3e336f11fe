package storage

import (
	"context"
	"errors"
	"time"

	"github.com/NissesSenap/plotstyle/internal/style"
)

// ErrStyleNotFound is returned when no style is stored under a name
var ErrStyleNotFound = errors.New("style not found")

// Store defines the interface for the style library
// This allows swapping SQLite for another database in the future
type Store interface {
	// Styles
	SaveStyle(ctx context.Context, rec *StyleRecord, table *style.Table) error
	GetStyle(ctx context.Context, name string) (*style.Table, error)
	GetStyleInfo(ctx context.Context, name string) (*StyleRecord, error)
	ListStyles(ctx context.Context) ([]*StyleRecord, error)
	DeleteStyle(ctx context.Context, name string) error

	// Settings
	GetSetting(ctx context.Context, name, key string) (style.Setting, error)
	FindSettings(ctx context.Context, key string) (map[string]string, error)

	// Lifecycle
	Close() error
}

// StyleRecord describes a stored style
type StyleRecord struct {
	ID           int64
	Name         string
	Source       string // path or label the style was imported from
	SettingCount int
	ImportedAt   time.Time
}
