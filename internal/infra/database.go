package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellx/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// schema. TranslateError is on so a sale-number collision surfaces as
// gorm.ErrDuplicatedKey — the finalization protocol's conflict signal.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.User{},
		&model.PaymentMethod{},
		&model.RegisterSession{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SalePayment{},
		&model.StockMovement{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
