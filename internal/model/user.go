package model

import (
	"time"
)

type EducationLevel string

const (
	EducationPrimary       EducationLevel = "primary"
	EducationMiddle        EducationLevel = "middle"
	EducationHigh          EducationLevel = "high"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationGraduate      EducationLevel = "graduate"
	EducationOther         EducationLevel = "other"
)

func (e EducationLevel) Valid() bool {
	switch e {
	case EducationPrimary, EducationMiddle, EducationHigh, EducationUndergraduate, EducationGraduate, EducationOther:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	Timestamps
	Username             string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email                string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password             string         `gorm:"size:100;not null" json:"-"`
	Age                  int            `gorm:"default:0" json:"age,omitempty"`
	EducationLevel       EducationLevel `gorm:"size:32;default:'other'" json:"educationLevel"`
	CurrentKnowledge     string         `gorm:"type:text;not null" json:"currentKnowledge"`
	PreferredContentType string         `gorm:"size:64" json:"preferredContentType,omitempty"`
	LastActive           time.Time      `json:"lastActive"`

	// Filled from roadmaps.user_id when a profile is read.
	RoadmapIDs []uint `gorm:"-" json:"roadmaps"`
}

func (User) TableName() string {
	return "users"
}
