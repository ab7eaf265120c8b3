package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// ProgramPreference is a per-user singleton. Any successful save marks it
// complete: preferences have no partially-filled state worth tracking.
type ProgramPreference struct {
  ID                      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID                  uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
  User                    *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  PrimarySpecialty        string                      `gorm:"not null;column:primary_specialty" json:"primary_specialty"`
  OtherSpecialties        datatypes.JSONSlice[string] `gorm:"column:other_specialties" json:"other_specialties"`
  PreferredStates         datatypes.JSONSlice[string] `gorm:"column:preferred_states" json:"preferred_states"`
  HospitalPreference      string                      `gorm:"column:hospital_preference;not null;default:'either'" json:"hospital_preference"`
  ResidentCountPreference string                      `gorm:"column:resident_count_preference;not null;default:'either'" json:"resident_count_preference"`
  ValuedCharacteristics   datatypes.JSONSlice[string] `gorm:"column:valued_characteristics" json:"valued_characteristics"`
  IsComplete              bool                        `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
  CreatedAt               time.Time                   `gorm:"not null" json:"created_at"`
  UpdatedAt               time.Time                   `gorm:"not null" json:"updated_at"`
}

func (ProgramPreference) TableName() string {
  return "program_preference"
}
