package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Experience struct {
  ID                     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                 uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
  User                   *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Organization           string          `gorm:"not null;column:organization" json:"organization"`
  Position               string          `gorm:"not null;column:position" json:"position"`
  StartDate              *time.Time      `gorm:"column:start_date" json:"start_date,omitempty"`
  EndDate                *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
  Current                bool            `gorm:"column:current;not null;default:false" json:"current"`
  Description            string          `gorm:"type:text;column:description" json:"description"`
  IsMostMeaningful       bool            `gorm:"column:is_most_meaningful;not null;default:false" json:"is_most_meaningful"`
  MeaningfulDescription  string          `gorm:"type:text;column:meaningful_description" json:"meaningful_description"`
  IsComplete             bool            `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
  CreatedAt              time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt              time.Time       `gorm:"not null" json:"updated_at"`
  DeletedAt              gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Experience) TableName() string {
  return "experience"
}
