package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/catalog"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type ApplicationInput struct {
  SeasonYear      int    `json:"season_year"`
  TargetSpecialty string `json:"target_specialty"`
  Status          string `json:"status"`
  Notes           string `json:"notes"`
}

type DashboardData struct {
  User               *types.User          `json:"user"`
  Snapshot           *ProgressSnapshot    `json:"snapshot"`
  Sections           []SectionStatus      `json:"sections"`
  Ready              bool                 `json:"ready"`
  Applications       []*types.Application `json:"applications"`
}

type ApplicationService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.Application, error)
  Create(ctx context.Context, userID uuid.UUID, input ApplicationInput) (*types.Application, error)
  Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ApplicationInput) (*types.Application, error)
  Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
  Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardData, error)
}

type applicationService struct {
  db               *gorm.DB
  log              *logger.Logger
  applicationRepo  repos.ApplicationRepo
  userRepo         repos.UserRepo
  progressService  ProgressService
  specialtyCatalog *catalog.Catalog
}

func NewApplicationService(
  db *gorm.DB,
  log *logger.Logger,
  applicationRepo repos.ApplicationRepo,
  userRepo repos.UserRepo,
  progressService ProgressService,
  specialtyCatalog *catalog.Catalog,
) ApplicationService {
  serviceLog := log.With("service", "ApplicationService")
  return &applicationService{
    db:               db,
    log:              serviceLog,
    applicationRepo:  applicationRepo,
    userRepo:         userRepo,
    progressService:  progressService,
    specialtyCatalog: specialtyCatalog,
  }
}

func (as *applicationService) List(ctx context.Context, userID uuid.UUID) ([]*types.Application, error) {
  return as.applicationRepo.GetByUserID(ctx, nil, userID)
}

func (as *applicationService) Create(ctx context.Context, userID uuid.UUID, input ApplicationInput) (*types.Application, error) {
  if err := as.validateInput(&input); err != nil {
    return nil, err
  }
  application := &types.Application{ID: uuid.New(), UserID: userID}
  as.applyInput(application, input)

  created, err := as.applicationRepo.Create(ctx, nil, []*types.Application{application})
  if err != nil {
    return nil, fmt.Errorf("Failed to create application: %w", err)
  }
  return created[0], nil
}

func (as *applicationService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ApplicationInput) (*types.Application, error) {
  if err := as.validateInput(&input); err != nil {
    return nil, err
  }
  application, err := as.getOwned(ctx, userID, id)
  if err != nil {
    return nil, err
  }
  as.applyInput(application, input)

  updated, err := as.applicationRepo.Update(ctx, nil, application)
  if err != nil {
    return nil, fmt.Errorf("Failed to update application: %w", err)
  }
  return updated, nil
}

func (as *applicationService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
  if _, err := as.getOwned(ctx, userID, id); err != nil {
    return err
  }
  if err := as.applicationRepo.Delete(ctx, nil, id); err != nil {
    return fmt.Errorf("Failed to delete application: %w", err)
  }
  return nil
}

// Dashboard recomputes progress rather than trusting the cached snapshot, so
// a stale snapshot on the user row can never survive a dashboard load.
func (as *applicationService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardData, error) {
  snapshot, sections, err := as.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to recompute application progress: %w", err)
  }

  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }

  applications, err := as.applicationRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load applications: %w", err)
  }

  return &DashboardData{
    User:         users[0],
    Snapshot:     snapshot,
    Sections:     sections,
    Ready:        snapshot.PercentageComplete >= ReadinessThreshold,
    Applications: applications,
  }, nil
}

func (as *applicationService) getOwned(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*types.Application, error) {
  applications, err := as.applicationRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load application: %w", err)
  }
  if len(applications) == 0 || applications[0].UserID != userID {
    return nil, fmt.Errorf("Application not found")
  }
  return applications[0], nil
}

func (as *applicationService) validateInput(input *ApplicationInput) error {
  input.TargetSpecialty = normalization.TrimInputString(input.TargetSpecialty)

  if input.SeasonYear < 2000 || input.SeasonYear > time.Now().Year()+2 {
    return fmt.Errorf("Season year %d is out of range", input.SeasonYear)
  }
  if input.TargetSpecialty != "" {
    if err := as.specialtyCatalog.ValidateSpecialty(input.TargetSpecialty); err != nil {
      return err
    }
  }
  switch input.Status {
  case "":
    input.Status = types.ApplicationStatusDraft
  case types.ApplicationStatusDraft, types.ApplicationStatusExported, types.ApplicationStatusSubmitted:
  default:
    return fmt.Errorf("Unknown application status: %s", input.Status)
  }
  return nil
}

func (as *applicationService) applyInput(application *types.Application, input ApplicationInput) {
  application.SeasonYear = input.SeasonYear
  application.TargetSpecialty = input.TargetSpecialty
  application.Status = input.Status
  application.Notes = input.Notes
}
