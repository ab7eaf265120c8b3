package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ExperienceInput struct {
  Organization          string     `json:"organization"`
  Position              string     `json:"position"`
  StartDate             *time.Time `json:"start_date"`
  EndDate               *time.Time `json:"end_date"`
  Current               bool       `json:"current"`
  Description           string     `json:"description"`
  IsMostMeaningful      bool       `json:"is_most_meaningful"`
  MeaningfulDescription string     `json:"meaningful_description"`
}

type ExperienceService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.Experience, error)
  Create(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*types.Experience, *ProgressSnapshot, error)
  Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ExperienceInput) (*types.Experience, *ProgressSnapshot, error)
  Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ProgressSnapshot, error)
}

type experienceService struct {
  db              *gorm.DB
  log             *logger.Logger
  experienceRepo  repos.ExperienceRepo
  progressService ProgressService
}

func NewExperienceService(
  db *gorm.DB,
  log *logger.Logger,
  experienceRepo repos.ExperienceRepo,
  progressService ProgressService,
) ExperienceService {
  serviceLog := log.With("service", "ExperienceService")
  return &experienceService{
    db:              db,
    log:             serviceLog,
    experienceRepo:  experienceRepo,
    progressService: progressService,
  }
}

func (es *experienceService) List(ctx context.Context, userID uuid.UUID) ([]*types.Experience, error) {
  return es.experienceRepo.GetByUserID(ctx, nil, userID)
}

func (es *experienceService) Create(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*types.Experience, *ProgressSnapshot, error) {
  if err := validateExperienceInput(&input); err != nil {
    return nil, nil, err
  }
  experience := &types.Experience{ID: uuid.New(), UserID: userID}
  applyExperienceInput(experience, input)

  created, err := es.experienceRepo.Create(ctx, nil, []*types.Experience{experience})
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to create experience: %w", err)
  }

  snapshot := es.recomputeBestEffort(ctx, userID)
  return created[0], snapshot, nil
}

func (es *experienceService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ExperienceInput) (*types.Experience, *ProgressSnapshot, error) {
  if err := validateExperienceInput(&input); err != nil {
    return nil, nil, err
  }
  experience, err := es.getOwned(ctx, userID, id)
  if err != nil {
    return nil, nil, err
  }
  applyExperienceInput(experience, input)

  updated, err := es.experienceRepo.Update(ctx, nil, experience)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to update experience: %w", err)
  }

  snapshot := es.recomputeBestEffort(ctx, userID)
  return updated, snapshot, nil
}

func (es *experienceService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ProgressSnapshot, error) {
  if _, err := es.getOwned(ctx, userID, id); err != nil {
    return nil, err
  }
  if err := es.experienceRepo.Delete(ctx, nil, id); err != nil {
    return nil, fmt.Errorf("Failed to delete experience: %w", err)
  }
  snapshot := es.recomputeBestEffort(ctx, userID)
  return snapshot, nil
}

func (es *experienceService) getOwned(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*types.Experience, error) {
  experiences, err := es.experienceRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load experience: %w", err)
  }
  if len(experiences) == 0 || experiences[0].UserID != userID {
    return nil, fmt.Errorf("Experience not found")
  }
  return experiences[0], nil
}

func (es *experienceService) recomputeBestEffort(ctx context.Context, userID uuid.UUID) *ProgressSnapshot {
  snapshot, _, err := es.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    es.log.Warn("Progress recomputation failed after experience write", "user_id", userID, "error", err)
    return nil
  }
  return snapshot
}

func validateExperienceInput(input *ExperienceInput) error {
  input.Organization = normalization.TrimInputString(input.Organization)
  input.Position = normalization.TrimInputString(input.Position)
  input.Description = normalization.TrimInputString(input.Description)
  input.MeaningfulDescription = normalization.TrimInputString(input.MeaningfulDescription)

  if input.Organization == "" {
    return fmt.Errorf("An organization is required")
  }
  if input.Position == "" {
    return fmt.Errorf("A position is required")
  }
  if input.Current {
    input.EndDate = nil
  } else if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
    return fmt.Errorf("End date cannot be before start date")
  }
  if input.IsMostMeaningful && input.MeaningfulDescription == "" {
    return fmt.Errorf("A meaningful description is required for a most meaningful experience")
  }
  return nil
}

func applyExperienceInput(experience *types.Experience, input ExperienceInput) {
  experience.Organization = input.Organization
  experience.Position = input.Position
  experience.StartDate = input.StartDate
  experience.EndDate = input.EndDate
  experience.Current = input.Current
  experience.Description = input.Description
  experience.IsMostMeaningful = input.IsMostMeaningful
  experience.MeaningfulDescription = input.MeaningfulDescription
  experience.IsComplete = deriveExperienceComplete(experience)
}

// An experience item counts as complete once the descriptive fields are filled
// in, and a most meaningful flag also carries its own description.
func deriveExperienceComplete(experience *types.Experience) bool {
  if experience.Organization == "" || experience.Position == "" || experience.Description == "" {
    return false
  }
  if experience.StartDate == nil {
    return false
  }
  if experience.IsMostMeaningful && experience.MeaningfulDescription == "" {
    return false
  }
  return true
}
