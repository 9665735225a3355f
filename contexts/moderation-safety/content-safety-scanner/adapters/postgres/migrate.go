package postgresadapter

import "gorm.io/gorm"

// AutoMigrate creates or updates the violation log table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&violationModel{})
}
