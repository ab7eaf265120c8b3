package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// Hospital settings and resident count bands used by Program and
// ProgramPreference.
const (
  SettingAcademic  = "academic"
  SettingCommunity = "community"
  SettingEither    = "either"

  ResidentCountFewer  = "fewer"
  ResidentCountMore   = "more"
  ResidentCountEither = "either"
)

type Program struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Name              string          `gorm:"not null;column:name" json:"name"`
  Institution       string          `gorm:"not null;column:institution" json:"institution"`
  Specialty         string          `gorm:"not null;index;column:specialty" json:"specialty"`
  City              string          `gorm:"column:city" json:"city"`
  State             string          `gorm:"index;column:state" json:"state"`
  Setting           string          `gorm:"column:setting;not null;default:'academic'" json:"setting"`
  ResidentCountBand string          `gorm:"column:resident_count_band;not null;default:'fewer'" json:"resident_count_band"`
  Website           string          `gorm:"column:website" json:"website"`
  Description       string          `gorm:"type:text;column:description" json:"description"`
  CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
  DeletedAt         gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Program) TableName() string {
  return "program"
}
