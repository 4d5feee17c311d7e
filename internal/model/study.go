package model

import "time"

type StudyStatus string

const (
	StudyStatusDraft     StudyStatus = "draft"
	StudyStatusPublished StudyStatus = "published"
)

type StudyLocation string

const (
	StudyLocationRemote   StudyLocation = "Remote"
	StudyLocationInPerson StudyLocation = "In-Person"
	StudyLocationHybrid   StudyLocation = "Hybrid"
)

type Study struct {
	ID               int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string        `gorm:"type:varchar(255);not null" json:"name"`
	Description      string        `gorm:"type:text;not null" json:"description"`
	UserType         string        `gorm:"type:varchar(100)" json:"user_type"`
	Location         StudyLocation `gorm:"type:varchar(50)" json:"location"`
	Status           StudyStatus   `gorm:"type:varchar(20);not null;default:draft;index" json:"status"`
	ParticipantLimit *int          `gorm:"check:chk_studies_participant_limit,participant_limit >= 0" json:"participant_limit"`
	CalendlyLink     *string       `gorm:"type:text" json:"calendly_link"`
	StartDate        *Date         `gorm:"type:date" json:"start_date"`
	EndDate          *Date         `gorm:"type:date" json:"end_date"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Populated by aggregate queries only; never written.
	SignupsCount   int64  `gorm:"->;-:migration" json:"signups_count"`
	SpotsRemaining *int64 `gorm:"-" json:"spots_remaining"`

	Signups []StudySignup `gorm:"foreignKey:StudyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Study) TableName() string { return "studies" }

// VisibleOn reports whether the public may see the study on the given day.
// Both window bounds are inclusive.
func (s *Study) VisibleOn(today Date) bool {
	if s.Status != StudyStatusPublished {
		return false
	}
	if s.StartDate != nil && s.StartDate.After(today) {
		return false
	}
	if s.EndDate != nil && s.EndDate.Before(today) {
		return false
	}
	return true
}

// HasCapacityFor reports whether one more signup fits given the current count.
func (s *Study) HasCapacityFor(signupsCount int64) bool {
	if s.ParticipantLimit == nil {
		return true
	}
	return signupsCount < int64(*s.ParticipantLimit)
}

// Annotate derives SpotsRemaining from ParticipantLimit and SignupsCount.
func (s *Study) Annotate() {
	if s.ParticipantLimit == nil {
		s.SpotsRemaining = nil
		return
	}
	remaining := int64(*s.ParticipantLimit) - s.SignupsCount
	if remaining < 0 {
		remaining = 0
	}
	s.SpotsRemaining = &remaining
}
