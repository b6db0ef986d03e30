package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Document is one stored record. The payload lives in a JSONB column so the
// table stays schemaless like a document collection.
type Document struct {
	ID         string            `gorm:"primaryKey;size:36"`
	Collection string            `gorm:"size:100;index:idx_documents_collection_created,priority:1;not null"`
	Data       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"index:idx_documents_collection_created,priority:2"`
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func OpenPostgres(dsn string, log *zap.Logger) (*GormStore, error) {
	pgConfig := postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // pgbouncer-style poolers reject prepared statements
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	store := NewGormStore(db, log)
	if err := store.Migrate(); err != nil {
		return nil, err
	}

	store.log.Info("database connected", zap.String("driver", "postgres"))
	return store, nil
}

// NewGormStore wraps an already opened gorm handle.
func NewGormStore(db *gorm.DB, log *zap.Logger) *GormStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormStore{db: db, log: log, now: time.Now}
}

func (s *GormStore) Migrate() error {
	migrator := s.db.Migrator()
	if !migrator.HasTable(&Document{}) {
		if err := migrator.CreateTable(&Document{}); err != nil {
			return fmt.Errorf("create documents table: %w", err)
		}
		s.log.Info("created table", zap.String("table", Document{}.TableName()))
		return nil
	}
	if err := migrator.AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("migrate documents table: %w", err)
	}
	return nil
}

func (s *GormStore) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	now := s.now().UTC()
	doc := Document{
		Collection: collection,
		Data:       datatypes.JSONMap(stamp(fields, now)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", fmt.Errorf("insert %s document: %w", collection, err)
	}
	return doc.ID, nil
}

func (s *GormStore) CountSince(ctx context.Context, collection string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND created_at >= ?", collection, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count %s documents: %w", collection, err)
	}
	return count, nil
}

func (s *GormStore) Name(ctx context.Context) (string, error) {
	return s.db.WithContext(ctx).Migrator().CurrentDatabase(), nil
}

// ListCollections returns the distinct collection names held in the
// documents table.
func (s *GormStore) ListCollections(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&Document{}).
		Distinct("collection").
		Order("collection").
		Pluck("collection", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
