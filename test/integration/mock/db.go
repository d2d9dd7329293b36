// Package mock provides in-memory infrastructure for the BDD suite.
package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database with the service schema.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates models into it.
func NewDb(models []any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	byTable := make(map[string]any, len(models))
	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		byTable[stmt.Schema.Table] = model
	}

	return &Db{
		DbConn: dbConn,
		models: byTable,
	}
}

// ClearDB removes every row, soft-deleted ones included.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of live rows in table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := d.DbConn.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
