package services

import (
  "context"
  "fmt"
  "sort"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/catalog"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

const maxRecommendations = 20

type ProgramInput struct {
  Name              string `json:"name"`
  Institution       string `json:"institution"`
  Specialty         string `json:"specialty"`
  City              string `json:"city"`
  State             string `json:"state"`
  Setting           string `json:"setting"`
  ResidentCountBand string `json:"resident_count_band"`
  Website           string `json:"website"`
  Description       string `json:"description"`
}

type RecommendedProgram struct {
  Program *types.Program `json:"program"`
  Score   int            `json:"score"`
  Reasons []string       `json:"reasons"`
}

type RecommendationResult struct {
  Ready              bool                  `json:"ready"`
  PercentageComplete int                   `json:"percentage_complete"`
  Programs           []*RecommendedProgram `json:"programs"`
}

type ProgramService interface {
  List(ctx context.Context, filter repos.ProgramFilter) ([]*types.Program, error)
  Get(ctx context.Context, id uuid.UUID) (*types.Program, error)
  Create(ctx context.Context, input ProgramInput) (*types.Program, error)
  Update(ctx context.Context, id uuid.UUID, input ProgramInput) (*types.Program, error)
  Delete(ctx context.Context, id uuid.UUID) error
  Recommend(ctx context.Context, userID uuid.UUID) (*RecommendationResult, error)
}

type programService struct {
  db               *gorm.DB
  log              *logger.Logger
  programRepo      repos.ProgramRepo
  preferenceRepo   repos.ProgramPreferenceRepo
  progressService  ProgressService
  specialtyCatalog *catalog.Catalog
}

func NewProgramService(
  db *gorm.DB,
  log *logger.Logger,
  programRepo repos.ProgramRepo,
  preferenceRepo repos.ProgramPreferenceRepo,
  progressService ProgressService,
  specialtyCatalog *catalog.Catalog,
) ProgramService {
  serviceLog := log.With("service", "ProgramService")
  return &programService{
    db:               db,
    log:              serviceLog,
    programRepo:      programRepo,
    preferenceRepo:   preferenceRepo,
    progressService:  progressService,
    specialtyCatalog: specialtyCatalog,
  }
}

func (ps *programService) List(ctx context.Context, filter repos.ProgramFilter) ([]*types.Program, error) {
  return ps.programRepo.List(ctx, nil, filter)
}

func (ps *programService) Get(ctx context.Context, id uuid.UUID) (*types.Program, error) {
  programs, err := ps.programRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load program: %w", err)
  }
  if len(programs) == 0 {
    return nil, fmt.Errorf("Program not found")
  }
  return programs[0], nil
}

func (ps *programService) Create(ctx context.Context, input ProgramInput) (*types.Program, error) {
  if err := validateProgramInput(&input, ps.specialtyCatalog); err != nil {
    return nil, err
  }
  program := &types.Program{ID: uuid.New()}
  applyProgramInput(program, input)

  created, err := ps.programRepo.Create(ctx, nil, []*types.Program{program})
  if err != nil {
    return nil, fmt.Errorf("Failed to create program: %w", err)
  }
  return created[0], nil
}

func (ps *programService) Update(ctx context.Context, id uuid.UUID, input ProgramInput) (*types.Program, error) {
  if err := validateProgramInput(&input, ps.specialtyCatalog); err != nil {
    return nil, err
  }
  program, err := ps.Get(ctx, id)
  if err != nil {
    return nil, err
  }
  applyProgramInput(program, input)

  updated, err := ps.programRepo.Update(ctx, nil, program)
  if err != nil {
    return nil, fmt.Errorf("Failed to update program: %w", err)
  }
  return updated, nil
}

func (ps *programService) Delete(ctx context.Context, id uuid.UUID) error {
  if _, err := ps.Get(ctx, id); err != nil {
    return err
  }
  if err := ps.programRepo.Delete(ctx, nil, id); err != nil {
    return fmt.Errorf("Failed to delete program: %w", err)
  }
  return nil
}

// Recommend scores the catalog against the user's saved preferences.
// Recommendations are served regardless of overall application progress; the
// result carries a readiness flag so callers can surface it.
func (ps *programService) Recommend(ctx context.Context, userID uuid.UUID) (*RecommendationResult, error) {
  preference, err := ps.preferenceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load program preferences: %w", err)
  }
  if preference == nil {
    return nil, fmt.Errorf("Save program preferences before requesting recommendations")
  }

  programs, err := ps.programRepo.List(ctx, nil, repos.ProgramFilter{})
  if err != nil {
    return nil, fmt.Errorf("Failed to list programs: %w", err)
  }

  recommended := scorePrograms(programs, preference)
  if len(recommended) > maxRecommendations {
    recommended = recommended[:maxRecommendations]
  }

  ready, percentage, err := ps.progressService.IsReady(ctx, userID)
  if err != nil {
    ps.log.Warn("Readiness check failed during recommendation", "user_id", userID, "error", err)
    ready, percentage = false, 0
  }

  return &RecommendationResult{
    Ready:              ready,
    PercentageComplete: percentage,
    Programs:           recommended,
  }, nil
}

func scorePrograms(programs []*types.Program, preference *types.ProgramPreference) []*RecommendedProgram {
  otherSpecialties := make(map[string]bool, len(preference.OtherSpecialties))
  for _, s := range preference.OtherSpecialties {
    otherSpecialties[s] = true
  }
  preferredStates := make(map[string]bool, len(preference.PreferredStates))
  for _, s := range preference.PreferredStates {
    preferredStates[s] = true
  }

  scored := make([]*RecommendedProgram, 0, len(programs))
  for _, program := range programs {
    score := 0
    var reasons []string
    switch {
    case program.Specialty == preference.PrimarySpecialty:
      score += 4
      reasons = append(reasons, "Matches your primary specialty")
    case otherSpecialties[program.Specialty]:
      score += 2
      reasons = append(reasons, "Matches one of your other specialties")
    default:
      continue
    }
    if preferredStates[program.State] {
      score += 2
      reasons = append(reasons, fmt.Sprintf("Located in %s", program.State))
    }
    if preference.HospitalPreference == types.SettingEither || program.Setting == preference.HospitalPreference {
      score += 1
      if program.Setting == preference.HospitalPreference {
        reasons = append(reasons, fmt.Sprintf("%s setting", program.Setting))
      }
    }
    if preference.ResidentCountPreference == types.ResidentCountEither || program.ResidentCountBand == preference.ResidentCountPreference {
      score += 1
      if program.ResidentCountBand == preference.ResidentCountPreference {
        reasons = append(reasons, "Program size matches your preference")
      }
    }
    scored = append(scored, &RecommendedProgram{Program: program, Score: score, Reasons: reasons})
  }

  sort.SliceStable(scored, func(i, j int) bool {
    if scored[i].Score != scored[j].Score {
      return scored[i].Score > scored[j].Score
    }
    return scored[i].Program.Name < scored[j].Program.Name
  })
  return scored
}

func validateProgramInput(input *ProgramInput, specialtyCatalog *catalog.Catalog) error {
  input.Name = normalization.TrimInputString(input.Name)
  input.Institution = normalization.TrimInputString(input.Institution)
  input.Specialty = normalization.TrimInputString(input.Specialty)
  input.State = normalization.TrimInputString(input.State)

  if input.Name == "" {
    return fmt.Errorf("A program name is required")
  }
  if input.Institution == "" {
    return fmt.Errorf("An institution is required")
  }
  if err := specialtyCatalog.ValidateSpecialty(input.Specialty); err != nil {
    return err
  }
  if input.State != "" {
    if err := specialtyCatalog.ValidateState(input.State); err != nil {
      return err
    }
  }
  switch input.Setting {
  case "":
    input.Setting = types.SettingAcademic
  case types.SettingAcademic, types.SettingCommunity:
  default:
    return fmt.Errorf("Unknown program setting: %s", input.Setting)
  }
  switch input.ResidentCountBand {
  case "":
    input.ResidentCountBand = types.ResidentCountFewer
  case types.ResidentCountFewer, types.ResidentCountMore:
  default:
    return fmt.Errorf("Unknown resident count band: %s", input.ResidentCountBand)
  }
  return nil
}

func applyProgramInput(program *types.Program, input ProgramInput) {
  program.Name = input.Name
  program.Institution = input.Institution
  program.Specialty = input.Specialty
  program.City = input.City
  program.State = input.State
  program.Setting = input.Setting
  program.ResidentCountBand = input.ResidentCountBand
  program.Website = input.Website
  program.Description = input.Description
}
