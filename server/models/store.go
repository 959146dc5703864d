package models

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store wraps the shared db handle & exposes all record operations.
// The handle is injected once at startup, so tests can swap in their own db.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the postgres database & migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel: gormLogger.Silent,
				Colorful: false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

var testDbCount int64

// InitializeTestDb returns a Store backed by a fresh in-memory sqlite db.
// Each call gets its own database, so tests never share records.
func InitializeTestDb() *Store {
	dsn := fmt.Sprintf("file:testdb%v?mode=memory&cache=shared", atomic.AddInt64(&testDbCount, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		log.Panicf("failed to open test database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		log.Panic(err)
	}

	return NewStore(db)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Contact{}, &Pic{})
}
