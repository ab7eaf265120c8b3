package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ProgramPreferenceRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ProgramPreference, error)
  Upsert(ctx context.Context, tx *gorm.DB, preference *types.ProgramPreference) (*types.ProgramPreference, error)
}

type programPreferenceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgramPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) ProgramPreferenceRepo {
  repoLog := baseLog.With("repo", "ProgramPreferenceRepo")
  return &programPreferenceRepo{db: db, log: repoLog}
}

func (ppr *programPreferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ProgramPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }

  var result types.ProgramPreference
  err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (ppr *programPreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, preference *types.ProgramPreference) (*types.ProgramPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }

  existing, err := ppr.GetByUserID(ctx, transaction, preference.UserID)
  if err != nil {
    return nil, err
  }
  if existing != nil {
    preference.ID = existing.ID
    preference.CreatedAt = existing.CreatedAt
  } else if preference.ID == uuid.Nil {
    preference.ID = uuid.New()
  }
  preference.UpdatedAt = time.Now()

  if err := transaction.WithContext(ctx).Save(preference).Error; err != nil {
    return nil, err
  }
  return preference, nil
}
