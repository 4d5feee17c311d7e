package model

import "time"

type StudySignup struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StudyID           int64     `gorm:"not null;uniqueIndex:idx_study_signups_study_email,priority:1" json:"study_id"`
	FirstName         string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName          string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_study_signups_study_email,priority:2;index" json:"email"`
	Role              string    `gorm:"type:varchar(100)" json:"role"`
	CompanyName       string    `gorm:"type:varchar(255)" json:"company_name"`
	CompanySize       string    `gorm:"type:varchar(50)" json:"company_size"`
	YearsExperience   string    `gorm:"type:varchar(50)" json:"years_experience"`
	Timezone          string    `gorm:"type:varchar(100)" json:"timezone"`
	Pronouns          *string   `gorm:"type:varchar(50)" json:"pronouns,omitempty"`
	CalendlyScheduled bool      `gorm:"not null;default:false" json:"calendly_scheduled"`
	CreatedAt         time.Time `json:"created_at"`
}

func (StudySignup) TableName() string { return "study_signups" }

// SignupMutableColumns are overwritten when a participant resubmits for the same study.
var SignupMutableColumns = []string{
	"first_name",
	"last_name",
	"role",
	"company_name",
	"company_size",
	"years_experience",
	"timezone",
	"pronouns",
}
