package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type EducationEntry struct {
  Institution    string `json:"institution"`
  Degree         string `json:"degree"`
  FieldOfStudy   string `json:"field_of_study"`
  GraduationYear int    `json:"graduation_year"`
}

// MiscellaneousQuestion is a per-user singleton holding the questionnaire
// odds and ends. IsComplete is derived on every save: at least one education
// entry AND the professionalism question answered either way.
type MiscellaneousQuestion struct {
  ID                         uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                     uuid.UUID                               `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
  User                       *User                                   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  ProfessionalismHasIssues   *bool                                   `gorm:"column:professionalism_has_issues" json:"professionalism_has_issues"`
  ProfessionalismExplanation string                                  `gorm:"type:text;column:professionalism_explanation" json:"professionalism_explanation"`
  Undergraduate              datatypes.JSONSlice[EducationEntry]     `gorm:"column:undergraduate" json:"undergraduate"`
  Graduate                   datatypes.JSONSlice[EducationEntry]     `gorm:"column:graduate" json:"graduate"`
  HonorsAwards               datatypes.JSONSlice[string]             `gorm:"column:honors_awards" json:"honors_awards"`
  ImpactfulExperience        string                                  `gorm:"type:text;column:impactful_experience" json:"impactful_experience"`
  HobbiesInterests           string                                  `gorm:"type:text;column:hobbies_interests" json:"hobbies_interests"`
  IsComplete                 bool                                    `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
  CreatedAt                  time.Time                               `gorm:"not null" json:"created_at"`
  UpdatedAt                  time.Time                               `gorm:"not null" json:"updated_at"`
}

func (MiscellaneousQuestion) TableName() string {
  return "miscellaneous_question"
}
