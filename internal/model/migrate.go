package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Study{},
		&StudySignup{},
		&WaitlistEntry{},
	); err != nil {
		return err
	}

	// Public listing only ever scans published rows inside their date window.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_studies_published_window " +
			"ON studies (start_date, end_date) WHERE status = 'published'",
	).Error
}
