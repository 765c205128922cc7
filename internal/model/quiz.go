package model

import "gorm.io/datatypes"

// swagger:model Quiz
type Quiz struct {
	Timestamps
	Topic       string         `gorm:"size:255;uniqueIndex;not null" json:"topic"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            uint                        `gorm:"primaryKey;autoIncrement" json:"-"`
	QuizID        uint                        `gorm:"index;not null" json:"-"`
	Position      int                         `gorm:"not null;default:0" json:"-"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer string                      `gorm:"type:text" json:"correct_answer"`
	Explanation   string                      `gorm:"type:text" json:"explanation"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
