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

type PersonalStatementRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PersonalStatement, error)
  Upsert(ctx context.Context, tx *gorm.DB, statement *types.PersonalStatement) (*types.PersonalStatement, error)
}

type personalStatementRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonalStatementRepo(db *gorm.DB, baseLog *logger.Logger) PersonalStatementRepo {
  repoLog := baseLog.With("repo", "PersonalStatementRepo")
  return &personalStatementRepo{db: db, log: repoLog}
}

func (psr *personalStatementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PersonalStatement, error) {
  transaction := tx
  if transaction == nil {
    transaction = psr.db
  }

  var result types.PersonalStatement
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

// Upsert keeps at most one statement row per user. The existing row's ID and
// CreatedAt survive the overwrite.
func (psr *personalStatementRepo) Upsert(ctx context.Context, tx *gorm.DB, statement *types.PersonalStatement) (*types.PersonalStatement, error) {
  transaction := tx
  if transaction == nil {
    transaction = psr.db
  }

  existing, err := psr.GetByUserID(ctx, transaction, statement.UserID)
  if err != nil {
    return nil, err
  }
  if existing != nil {
    statement.ID = existing.ID
    statement.CreatedAt = existing.CreatedAt
  } else if statement.ID == uuid.Nil {
    statement.ID = uuid.New()
  }
  statement.UpdatedAt = time.Now()

  if err := transaction.WithContext(ctx).Save(statement).Error; err != nil {
    return nil, err
  }
  return statement, nil
}
