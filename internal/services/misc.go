package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type MiscQuestionInput struct {
  ProfessionalismHasIssues   *bool                  `json:"professionalism_has_issues"`
  ProfessionalismExplanation string                 `json:"professionalism_explanation"`
  Undergraduate              []types.EducationEntry `json:"undergraduate"`
  Graduate                   []types.EducationEntry `json:"graduate"`
  HonorsAwards               []string               `json:"honors_awards"`
  ImpactfulExperience        string                 `json:"impactful_experience"`
  HobbiesInterests           string                 `json:"hobbies_interests"`
}

type MiscQuestionService interface {
  GetByUser(ctx context.Context, userID uuid.UUID) (*types.MiscellaneousQuestion, error)
  Save(ctx context.Context, userID uuid.UUID, input MiscQuestionInput) (*types.MiscellaneousQuestion, *ProgressSnapshot, error)
}

type miscQuestionService struct {
  db              *gorm.DB
  log             *logger.Logger
  miscRepo        repos.MiscQuestionRepo
  progressService ProgressService
}

func NewMiscQuestionService(
  db *gorm.DB,
  log *logger.Logger,
  miscRepo repos.MiscQuestionRepo,
  progressService ProgressService,
) MiscQuestionService {
  serviceLog := log.With("service", "MiscQuestionService")
  return &miscQuestionService{
    db:              db,
    log:             serviceLog,
    miscRepo:        miscRepo,
    progressService: progressService,
  }
}

func (ms *miscQuestionService) GetByUser(ctx context.Context, userID uuid.UUID) (*types.MiscellaneousQuestion, error) {
  return ms.miscRepo.GetByUserID(ctx, nil, userID)
}

func (ms *miscQuestionService) Save(ctx context.Context, userID uuid.UUID, input MiscQuestionInput) (*types.MiscellaneousQuestion, *ProgressSnapshot, error) {
  input.ProfessionalismExplanation = normalization.TrimInputString(input.ProfessionalismExplanation)
  input.HonorsAwards = normalization.TrimInputStrings(input.HonorsAwards)

  if input.ProfessionalismHasIssues != nil && *input.ProfessionalismHasIssues && input.ProfessionalismExplanation == "" {
    return nil, nil, fmt.Errorf("An explanation is required when professionalism issues are reported")
  }
  for _, entry := range append(append([]types.EducationEntry{}, input.Undergraduate...), input.Graduate...) {
    if entry.Institution == "" {
      return nil, nil, fmt.Errorf("Every education entry needs an institution")
    }
  }

  existing, err := ms.miscRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to load miscellaneous questions: %w", err)
  }

  misc := &types.MiscellaneousQuestion{UserID: userID}
  if existing != nil {
    misc = existing
  }
  misc.ProfessionalismHasIssues = input.ProfessionalismHasIssues
  misc.ProfessionalismExplanation = input.ProfessionalismExplanation
  misc.Undergraduate = input.Undergraduate
  misc.Graduate = input.Graduate
  misc.HonorsAwards = input.HonorsAwards
  misc.ImpactfulExperience = input.ImpactfulExperience
  misc.HobbiesInterests = input.HobbiesInterests
  misc.IsComplete = deriveMiscComplete(misc)

  saved, err := ms.miscRepo.Upsert(ctx, nil, misc)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to save miscellaneous questions: %w", err)
  }

  snapshot, _, err := ms.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    ms.log.Warn("Progress recomputation failed after miscellaneous write", "user_id", userID, "error", err)
    snapshot = nil
  }
  return saved, snapshot, nil
}

// Complete means at least one education entry on either list and the
// professionalism question answered, yes or no.
func deriveMiscComplete(misc *types.MiscellaneousQuestion) bool {
  if len(misc.Undergraduate)+len(misc.Graduate) == 0 {
    return false
  }
  return misc.ProfessionalismHasIssues != nil
}
