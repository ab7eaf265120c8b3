package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  ApplicationStatusDraft     = "draft"
  ApplicationStatusExported  = "exported"
  ApplicationStatusSubmitted = "submitted"
)

type Application struct {
  ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
  User            *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  SeasonYear      int             `gorm:"column:season_year;not null" json:"season_year"`
  TargetSpecialty string          `gorm:"column:target_specialty" json:"target_specialty"`
  Status          string          `gorm:"column:status;not null;default:'draft'" json:"status"`
  Notes           string          `gorm:"type:text;column:notes" json:"notes"`
  ExportedAt      *time.Time      `gorm:"column:exported_at" json:"exported_at,omitempty"`
  CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
  DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Application) TableName() string {
  return "application"
}
