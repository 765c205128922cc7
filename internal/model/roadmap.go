package model

import (
	"gorm.io/datatypes"
)

type RoadmapLevel string

const (
	LevelBeginner     RoadmapLevel = "Beginner"
	LevelIntermediate RoadmapLevel = "Intermediate"
	LevelAdvanced     RoadmapLevel = "Advanced"
	LevelAllLevels    RoadmapLevel = "All Levels"
)

func (l RoadmapLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels:
		return true
	}
	return false
}

// Roadmap is a learner's personalised plan. OverallProgress is derived from
// its modules and stored alongside them.
// swagger:model Roadmap
type Roadmap struct {
	BaseModel
	UserID          uint         `gorm:"index;not null" json:"userId"`
	CourseTitle     string       `gorm:"size:255;not null" json:"course_title"`
	Description     string       `gorm:"type:text" json:"description"`
	Duration        string       `gorm:"size:100" json:"duration"`
	Level           RoadmapLevel `gorm:"size:32;not null" json:"level"`
	OverallProgress float64      `gorm:"not null;default:0" json:"overallProgress"`
	IsActive        bool         `gorm:"not null;default:true" json:"isActive"`
	Modules         []Module     `gorm:"foreignKey:RoadmapID" json:"modules"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}

// Module groups ordered topics. Topics never change after creation;
// CompletedTopics only grows. Version guards concurrent progress writes.
// swagger:model Module
type Module struct {
	BaseModel
	RoadmapID       uint                        `gorm:"index;not null" json:"roadmapId"`
	Position        int                         `gorm:"not null;default:0" json:"position"`
	Title           string                      `gorm:"size:255;not null" json:"module_title"`
	Description     string                      `gorm:"type:text" json:"description"`
	Topics          datatypes.JSONSlice[string] `gorm:"not null" json:"topics"`
	CompletedTopics datatypes.JSONSlice[string] `json:"completedTopics"`
	Progress        float64                     `gorm:"not null;default:0" json:"progress"`
	Version         int                         `gorm:"not null;default:0" json:"-"`
}

func (Module) TableName() string {
	return "modules"
}
