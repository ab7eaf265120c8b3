package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ProgramFilter struct {
  Specialty string
  State     string
}

type ProgramRepo interface {
  Create(ctx context.Context, tx *gorm.DB, programs []*types.Program) ([]*types.Program, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Program, error)
  List(ctx context.Context, tx *gorm.DB, filter ProgramFilter) ([]*types.Program, error)
  Update(ctx context.Context, tx *gorm.DB, program *types.Program) (*types.Program, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type programRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgramRepo(db *gorm.DB, baseLog *logger.Logger) ProgramRepo {
  repoLog := baseLog.With("repo", "ProgramRepo")
  return &programRepo{db: db, log: repoLog}
}

func (pr *programRepo) Create(ctx context.Context, tx *gorm.DB, programs []*types.Program) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(programs) == 0 {
    return []*types.Program{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&programs).Error; err != nil {
    return nil, err
  }
  return programs, nil
}

func (pr *programRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Program
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

func (pr *programRepo) List(ctx context.Context, tx *gorm.DB, filter ProgramFilter) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  query := transaction.WithContext(ctx).Model(&types.Program{})
  if filter.Specialty != "" {
    query = query.Where("specialty = ?", filter.Specialty)
  }
  if filter.State != "" {
    query = query.Where("state = ?", filter.State)
  }

  var results []*types.Program
  if err := query.Order("name ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *programRepo) Update(ctx context.Context, tx *gorm.DB, program *types.Program) (*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Save(program).Error; err != nil {
    return nil, err
  }
  return program, nil
}

func (pr *programRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Program{}).Error
}
