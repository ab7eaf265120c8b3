package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

const (
  ResearchTypeJournalArticle = "journal-article"
  ResearchTypeAbstract       = "abstract"
  ResearchTypePoster         = "poster"
  ResearchTypePodium         = "podium"

  ResearchStatusPublished  = "published"
  ResearchStatusAccepted   = "accepted"
  ResearchStatusSubmitted  = "submitted"
  ResearchStatusInProgress = "in-progress"
)

type ResearchProduct struct {
  ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID                   `gorm:"type:uuid;index;not null" json:"user_id"`
  User        *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Title       string                      `gorm:"not null;column:title" json:"title"`
  Type        string                      `gorm:"column:type;not null;default:'journal-article'" json:"type"`
  Status      string                      `gorm:"column:status;not null;default:'in-progress'" json:"status"`
  Authors     datatypes.JSONSlice[string] `gorm:"column:authors" json:"authors"`
  Journal     string                      `gorm:"column:journal" json:"journal"`
  Volume      string                      `gorm:"column:volume" json:"volume"`
  Issue       string                      `gorm:"column:issue" json:"issue"`
  Pages       string                      `gorm:"column:pages" json:"pages"`
  PMID        string                      `gorm:"index;column:pmid" json:"pmid"`
  PubDate     string                      `gorm:"column:pub_date" json:"pub_date"`
  IsComplete  bool                        `gorm:"column:is_complete;not null;default:false" json:"is_complete"`
  CreatedAt   time.Time                   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
  DeletedAt   gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

func (ResearchProduct) TableName() string {
  return "research_product"
}
