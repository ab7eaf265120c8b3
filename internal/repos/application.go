package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ApplicationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, applications []*types.Application) ([]*types.Application, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Application, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Application, error)
  Update(ctx context.Context, tx *gorm.DB, application *types.Application) (*types.Application, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type applicationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
  repoLog := baseLog.With("repo", "ApplicationRepo")
  return &applicationRepo{db: db, log: repoLog}
}

func (ar *applicationRepo) Create(ctx context.Context, tx *gorm.DB, applications []*types.Application) ([]*types.Application, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(applications) == 0 {
    return []*types.Application{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&applications).Error; err != nil {
    return nil, err
  }
  return applications, nil
}

func (ar *applicationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Application, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Application
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

func (ar *applicationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Application, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Application
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("season_year DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *applicationRepo) Update(ctx context.Context, tx *gorm.DB, application *types.Application) (*types.Application, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).Save(application).Error; err != nil {
    return nil, err
  }
  return application, nil
}

func (ar *applicationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Application{}).Error
}
