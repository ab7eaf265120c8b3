package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/catalog"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

const MaxValuedCharacteristics = 3

type PreferenceInput struct {
  PrimarySpecialty        string   `json:"primary_specialty"`
  OtherSpecialties        []string `json:"other_specialties"`
  PreferredStates         []string `json:"preferred_states"`
  HospitalPreference      string   `json:"hospital_preference"`
  ResidentCountPreference string   `json:"resident_count_preference"`
  ValuedCharacteristics   []string `json:"valued_characteristics"`
}

type PreferenceService interface {
  GetByUser(ctx context.Context, userID uuid.UUID) (*types.ProgramPreference, error)
  Save(ctx context.Context, userID uuid.UUID, input PreferenceInput) (*types.ProgramPreference, *ProgressSnapshot, error)
}

type preferenceService struct {
  db               *gorm.DB
  log              *logger.Logger
  preferenceRepo   repos.ProgramPreferenceRepo
  progressService  ProgressService
  specialtyCatalog *catalog.Catalog
}

func NewPreferenceService(
  db *gorm.DB,
  log *logger.Logger,
  preferenceRepo repos.ProgramPreferenceRepo,
  progressService ProgressService,
  specialtyCatalog *catalog.Catalog,
) PreferenceService {
  serviceLog := log.With("service", "PreferenceService")
  return &preferenceService{
    db:               db,
    log:              serviceLog,
    preferenceRepo:   preferenceRepo,
    progressService:  progressService,
    specialtyCatalog: specialtyCatalog,
  }
}

func (ps *preferenceService) GetByUser(ctx context.Context, userID uuid.UUID) (*types.ProgramPreference, error) {
  return ps.preferenceRepo.GetByUserID(ctx, nil, userID)
}

func (ps *preferenceService) Save(ctx context.Context, userID uuid.UUID, input PreferenceInput) (*types.ProgramPreference, *ProgressSnapshot, error) {
  input.PrimarySpecialty = normalization.TrimInputString(input.PrimarySpecialty)
  input.OtherSpecialties = normalization.TrimInputStrings(input.OtherSpecialties)
  input.PreferredStates = normalization.TrimInputStrings(input.PreferredStates)
  input.ValuedCharacteristics = normalization.TrimInputStrings(input.ValuedCharacteristics)

  if input.PrimarySpecialty == "" {
    return nil, nil, fmt.Errorf("A primary specialty is required")
  }
  if err := ps.specialtyCatalog.ValidateSpecialty(input.PrimarySpecialty); err != nil {
    return nil, nil, err
  }
  if err := ps.specialtyCatalog.ValidateSpecialties(input.OtherSpecialties); err != nil {
    return nil, nil, err
  }
  if err := ps.specialtyCatalog.ValidateStates(input.PreferredStates); err != nil {
    return nil, nil, err
  }
  if len(input.ValuedCharacteristics) > MaxValuedCharacteristics {
    return nil, nil, fmt.Errorf("At most %d valued characteristics are allowed", MaxValuedCharacteristics)
  }
  switch input.HospitalPreference {
  case "":
    input.HospitalPreference = types.SettingEither
  case types.SettingAcademic, types.SettingCommunity, types.SettingEither:
  default:
    return nil, nil, fmt.Errorf("Unknown hospital preference: %s", input.HospitalPreference)
  }
  switch input.ResidentCountPreference {
  case "":
    input.ResidentCountPreference = types.ResidentCountEither
  case types.ResidentCountFewer, types.ResidentCountMore, types.ResidentCountEither:
  default:
    return nil, nil, fmt.Errorf("Unknown resident count preference: %s", input.ResidentCountPreference)
  }

  existing, err := ps.preferenceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to load program preferences: %w", err)
  }

  preference := &types.ProgramPreference{UserID: userID}
  if existing != nil {
    preference = existing
  }
  preference.PrimarySpecialty = input.PrimarySpecialty
  preference.OtherSpecialties = input.OtherSpecialties
  preference.PreferredStates = input.PreferredStates
  preference.HospitalPreference = input.HospitalPreference
  preference.ResidentCountPreference = input.ResidentCountPreference
  preference.ValuedCharacteristics = input.ValuedCharacteristics
  preference.IsComplete = true

  saved, err := ps.preferenceRepo.Upsert(ctx, nil, preference)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to save program preferences: %w", err)
  }

  snapshot, _, err := ps.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    ps.log.Warn("Progress recomputation failed after preference write", "user_id", userID, "error", err)
    snapshot = nil
  }
  return saved, snapshot, nil
}
