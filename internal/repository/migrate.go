package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every row model this
// package owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&packModel{},
		&holdModel{},
		&reservationModel{},
		&paymentEventModel{},
	)
}
