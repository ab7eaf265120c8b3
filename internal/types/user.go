package types

import (
  "time"
  "github.com/google/uuid"
)

type User struct {
  ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Email               string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password            string          `gorm:"not null;column:password" json:"-"`
  FirstName           string          `gorm:"not null;column:first_name" json:"first_name"`
  LastName            string          `gorm:"not null;column:last_name" json:"last_name"`
  AvatarPath          string          `gorm:"column:avatar_path" json:"avatar_path"`
  AvatarURL           string          `gorm:"column:avatar_url" json:"avatar_url"`

  // Cached application progress snapshot. Always recomputed from the five
  // section collections, never patched in place.
  TotalSections       int             `gorm:"column:total_sections;not null;default:5" json:"total_sections"`
  CompletedSections   int             `gorm:"column:completed_sections;not null;default:0" json:"completed_sections"`
  PercentageComplete  int             `gorm:"column:percentage_complete;not null;default:0" json:"percentage_complete"`

  CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt           time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
