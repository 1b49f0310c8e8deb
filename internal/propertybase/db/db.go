// Package db implements the property base repository on top of GORM.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dbm "github.com/gartstein/propertyhub/internal/propertybase/db/models"
	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the libpq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func NewRepository(cfg *Config) (*Repository, error) {
	return Open(postgres.Open(cfg.DSN()))
}

// Open connects through any GORM dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(dbm.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Exec runs raw SQL. Integration tests use it to reset tables.
func (r *Repository) Exec(ctx context.Context, sql string, args ...any) error {
	return r.db.WithContext(ctx).Exec(sql, args...).Error
}

// Ping checks the underlying connection.
func (r *Repository) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

type scope = func(*gorm.DB) *gorm.DB

func noFilter(db *gorm.DB) *gorm.DB { return db }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains returns a LIKE pattern matching s literally anywhere. Queries
// using it must declare ESCAPE '\'.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func create[R any](ctx context.Context, db *gorm.DB, row *R) error {
	result := db.WithContext(ctx).Create(row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	return nil
}

func getByID[R any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*R, error) {
	var row R
	result := db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &row, nil
}

func listPage[R any](ctx context.Context, db *gorm.DB, filter scope, page models.PageRequest) ([]R, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(R)).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []R
	err := db.WithContext(ctx).
		Scopes(filter).
		Order("created_at ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func update[R any](ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		_, err := getByID[R](ctx, db, id)
		return err
	}

	result := db.WithContext(ctx).Model(new(R)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateName
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func deleteByID[R any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(new(R), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// setIf adds column to fields when v is non-nil.
func setIf[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}
