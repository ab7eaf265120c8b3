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

type MiscQuestionRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MiscellaneousQuestion, error)
  Upsert(ctx context.Context, tx *gorm.DB, misc *types.MiscellaneousQuestion) (*types.MiscellaneousQuestion, error)
}

type miscQuestionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMiscQuestionRepo(db *gorm.DB, baseLog *logger.Logger) MiscQuestionRepo {
  repoLog := baseLog.With("repo", "MiscQuestionRepo")
  return &miscQuestionRepo{db: db, log: repoLog}
}

func (mqr *miscQuestionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MiscellaneousQuestion, error) {
  transaction := tx
  if transaction == nil {
    transaction = mqr.db
  }

  var result types.MiscellaneousQuestion
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

func (mqr *miscQuestionRepo) Upsert(ctx context.Context, tx *gorm.DB, misc *types.MiscellaneousQuestion) (*types.MiscellaneousQuestion, error) {
  transaction := tx
  if transaction == nil {
    transaction = mqr.db
  }

  existing, err := mqr.GetByUserID(ctx, transaction, misc.UserID)
  if err != nil {
    return nil, err
  }
  if existing != nil {
    misc.ID = existing.ID
    misc.CreatedAt = existing.CreatedAt
  } else if misc.ID == uuid.Nil {
    misc.ID = uuid.New()
  }
  misc.UpdatedAt = time.Now()

  if err := transaction.WithContext(ctx).Save(misc).Error; err != nil {
    return nil, err
  }
  return misc, nil
}
