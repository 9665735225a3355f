package postgresadapter

import "gorm.io/gorm"

// AutoMigrate creates or updates the pricing tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&quoteModel{}, &rateCardModel{}, &idempotencyModel{}, &outboxModel{})
}
