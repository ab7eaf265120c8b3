package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// MaxCharacteristics caps the characteristics a statement may name, and the
// valued characteristics on a ProgramPreference.
const MaxCharacteristics = 3

type CharacteristicStory struct {
  Characteristic string `json:"characteristic"`
  Story          string `json:"story"`
}

// PersonalStatement is a per-user singleton: at most one row per user,
// upserted on save. IsComplete is declared by the statement flow (the user
// finalizes a draft), not derived here.
type PersonalStatement struct {
  ID                      uuid.UUID                                   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                  uuid.UUID                                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
  User                    *User                                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Specialties             datatypes.JSONSlice[string]                 `gorm:"column:specialties" json:"specialties"`
  Motivation              string                                      `gorm:"type:text;column:motivation" json:"motivation"`
  Characteristics         datatypes.JSONSlice[string]                 `gorm:"column:characteristics" json:"characteristics"`
  CharacteristicStories   datatypes.JSONSlice[CharacteristicStory]    `gorm:"column:characteristic_stories" json:"characteristic_stories"`
  ThesisStatements        datatypes.JSONSlice[string]                 `gorm:"column:thesis_statements" json:"thesis_statements"`
  SelectedThesisStatement string                                      `gorm:"type:text;column:selected_thesis_statement" json:"selected_thesis_statement"`
  FinalStatement          string                                      `gorm:"type:text;column:final_statement" json:"final_statement"`
  WordCount               int                                         `gorm:"column:word_count;not null;default:0" json:"word_count"`
  IsComplete              bool                                        `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
  CreatedAt               time.Time                                   `gorm:"not null" json:"created_at"`
  UpdatedAt               time.Time                                   `gorm:"not null" json:"updated_at"`
}

func (PersonalStatement) TableName() string {
  return "personal_statement"
}
