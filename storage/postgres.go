package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// mappingRow is the mappings table row.
type mappingRow struct {
	Slug      string `gorm:"primaryKey"`
	TargetURL string `gorm:"not null"`
}

func (mappingRow) TableName() string {
	return "mappings"
}

// PostgresStorage implements Store on PostgreSQL through gorm.
type PostgresStorage struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPostgresStorage connects to PostgreSQL and migrates the mappings table.
func NewPostgresStorage(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&mappingRow{}); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("migrate mappings: %w", err)
	}

	logger.Info("Connected to postgres")
	return &PostgresStorage{db: db, logger: logger}, nil
}

// Get returns the target URL stored under slug.
func (s *PostgresStorage) Get(ctx context.Context, slug string) (string, error) {
	var row mappingRow
	err := s.db.WithContext(ctx).Where("slug = ?", slug).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get mapping: %w", err)
	}
	return row.TargetURL, nil
}

// PutIfAbsent inserts the mapping with ON CONFLICT DO NOTHING.
func (s *PostgresStorage) PutIfAbsent(ctx context.Context, slug, targetURL string) error {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&mappingRow{Slug: slug, TargetURL: targetURL})
	if result.Error != nil {
		return fmt.Errorf("insert mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		s.logger.Warn("Attempt to overwrite existing slug", zap.String("slug", slug))
		return ErrSlugExists
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStorage) Close() error {
	return closeGorm(s.db)
}

func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
