package model

import "gorm.io/datatypes"

type VideoLink struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ModuleContent is generated lesson material, one row per topic. Rows are
// written once and never updated.
// swagger:model ModuleContent
type ModuleContent struct {
	Timestamps
	Topic           string                         `gorm:"size:255;uniqueIndex;not null" json:"topic"`
	Title           string                         `gorm:"size:255;not null" json:"title"`
	Description     string                         `gorm:"type:text;not null" json:"description"`
	Details         string                         `gorm:"type:text" json:"details"`
	Level           string                         `gorm:"size:64;default:'Beginner'" json:"level"`
	EstimatedTime   string                         `gorm:"size:64;default:'1-2 hours'" json:"estimated_time"`
	Examples        datatypes.JSONSlice[string]    `json:"examples"`
	RelatedConcepts datatypes.JSONSlice[string]    `json:"related_concepts"`
	OtherResources  datatypes.JSONSlice[string]    `json:"other_resources"`
	YoutubeLinks    datatypes.JSONSlice[VideoLink] `json:"youtube_links"`
}

func (ModuleContent) TableName() string {
	return "module_contents"
}
