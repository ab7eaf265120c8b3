package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ExperienceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, experiences []*types.Experience) ([]*types.Experience, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Experience, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Experience, error)
  Update(ctx context.Context, tx *gorm.DB, experience *types.Experience) (*types.Experience, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type experienceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewExperienceRepo(db *gorm.DB, baseLog *logger.Logger) ExperienceRepo {
  repoLog := baseLog.With("repo", "ExperienceRepo")
  return &experienceRepo{db: db, log: repoLog}
}

func (er *experienceRepo) Create(ctx context.Context, tx *gorm.DB, experiences []*types.Experience) ([]*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  if len(experiences) == 0 {
    return []*types.Experience{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&experiences).Error; err != nil {
    return nil, err
  }
  return experiences, nil
}

func (er *experienceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  var results []*types.Experience
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (er *experienceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  var results []*types.Experience
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (er *experienceRepo) Update(ctx context.Context, tx *gorm.DB, experience *types.Experience) (*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  if err := transaction.WithContext(ctx).Save(experience).Error; err != nil {
    return nil, err
  }
  return experience, nil
}

func (er *experienceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Experience{}).Error
}
