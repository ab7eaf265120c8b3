package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ResearchProductRepo interface {
  Create(ctx context.Context, tx *gorm.DB, products []*types.ResearchProduct) ([]*types.ResearchProduct, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ResearchProduct, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ResearchProduct, error)
  Update(ctx context.Context, tx *gorm.DB, product *types.ResearchProduct) (*types.ResearchProduct, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type researchProductRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResearchProductRepo(db *gorm.DB, baseLog *logger.Logger) ResearchProductRepo {
  repoLog := baseLog.With("repo", "ResearchProductRepo")
  return &researchProductRepo{db: db, log: repoLog}
}

func (rpr *researchProductRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.ResearchProduct) ([]*types.ResearchProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = rpr.db
  }

  if len(products) == 0 {
    return []*types.ResearchProduct{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
    return nil, err
  }
  return products, nil
}

func (rpr *researchProductRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ResearchProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = rpr.db
  }

  var results []*types.ResearchProduct
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

func (rpr *researchProductRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ResearchProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = rpr.db
  }

  var results []*types.ResearchProduct
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rpr *researchProductRepo) Update(ctx context.Context, tx *gorm.DB, product *types.ResearchProduct) (*types.ResearchProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = rpr.db
  }

  if err := transaction.WithContext(ctx).Save(product).Error; err != nil {
    return nil, err
  }
  return product, nil
}

func (rpr *researchProductRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rpr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.ResearchProduct{}).Error
}
