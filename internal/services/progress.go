package services

import (
  "context"
  "fmt"
  "math"
  "golang.org/x/sync/errgroup"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/repos"
)

// The five sections that count toward application progress.
const (
  SectionPersonalStatement = "personal_statement"
  SectionResearchProducts  = "research_products"
  SectionExperiences       = "experiences"
  SectionMiscellaneous     = "miscellaneous"
  SectionProgramPreference = "program_preference"

  TotalApplicationSections = 5

  // ReadinessThreshold gates PDF export. Inclusive: 85 is ready.
  ReadinessThreshold = 85
)

const (
  StatusNotStarted = "Not Started"
  StatusInProgress = "In Progress"
  StatusCompleted  = "Completed"
)

type SectionStatus struct {
  Section             string  `json:"section"`
  Complete            bool    `json:"complete"`
  Status              string  `json:"status"`
  ItemCount           int     `json:"item_count,omitempty"`
  MostMeaningfulCount int     `json:"most_meaningful_count,omitempty"`
}

type ProgressSnapshot struct {
  TotalSections      int `json:"total_sections"`
  CompletedSections  int `json:"completed_sections"`
  PercentageComplete int `json:"percentage_complete"`
}

type ProgressService interface {
  RecomputeProgress(ctx context.Context, userID uuid.UUID) (*ProgressSnapshot, []SectionStatus, error)
  IsReady(ctx context.Context, userID uuid.UUID) (bool, int, error)
}

type progressService struct {
  db             *gorm.DB
  log            *logger.Logger
  userRepo       repos.UserRepo
  statementRepo  repos.PersonalStatementRepo
  researchRepo   repos.ResearchProductRepo
  experienceRepo repos.ExperienceRepo
  miscRepo       repos.MiscQuestionRepo
  preferenceRepo repos.ProgramPreferenceRepo
}

func NewProgressService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  statementRepo repos.PersonalStatementRepo,
  researchRepo repos.ResearchProductRepo,
  experienceRepo repos.ExperienceRepo,
  miscRepo repos.MiscQuestionRepo,
  preferenceRepo repos.ProgramPreferenceRepo,
) ProgressService {
  serviceLog := log.With("service", "ProgressService")
  return &progressService{
    db:             db,
    log:            serviceLog,
    userRepo:       userRepo,
    statementRepo:  statementRepo,
    researchRepo:   researchRepo,
    experienceRepo: experienceRepo,
    miscRepo:       miscRepo,
    preferenceRepo: preferenceRepo,
  }
}

// RecomputeProgress re-reads all five sections fresh, never applying a delta
// to a stale snapshot, so concurrent double-submits converge on the same
// value. A failing evaluator counts its section as incomplete instead of
// failing the whole computation.
func (ps *progressService) RecomputeProgress(ctx context.Context, userID uuid.UUID) (*ProgressSnapshot, []SectionStatus, error) {
  sections := ps.evaluateSections(ctx, userID)

  completed := 0
  for _, s := range sections {
    if s.Complete {
      completed++
    }
  }

  snapshot := &ProgressSnapshot{
    TotalSections:      TotalApplicationSections,
    CompletedSections:  completed,
    PercentageComplete: int(math.Round(float64(completed) * 100.0 / float64(TotalApplicationSections))),
  }

  if err := ps.userRepo.UpdateProgressSnapshot(ctx, nil, userID, snapshot.TotalSections, snapshot.CompletedSections, snapshot.PercentageComplete); err != nil {
    return nil, nil, fmt.Errorf("Failed to persist progress snapshot: %w", err)
  }
  return snapshot, sections, nil
}

func (ps *progressService) IsReady(ctx context.Context, userID uuid.UUID) (bool, int, error) {
  users, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return false, 0, fmt.Errorf("Failed to load user for readiness check: %w", err)
  }
  if len(users) == 0 {
    return false, 0, fmt.Errorf("No user found for readiness check")
  }
  pct := users[0].PercentageComplete
  return pct >= ReadinessThreshold, pct, nil
}

// The evaluators are read-only queries against independent collections, so
// they run concurrently. Each failure is logged and its section reported as
// not started: progress fails toward "incomplete", never toward "complete".
func (ps *progressService) evaluateSections(ctx context.Context, userID uuid.UUID) []SectionStatus {
  evaluators := []func(context.Context, uuid.UUID) (SectionStatus, error){
    ps.evaluatePersonalStatement,
    ps.evaluateResearchProducts,
    ps.evaluateExperiences,
    ps.evaluateMiscellaneous,
    ps.evaluateProgramPreference,
  }
  sectionNames := []string{
    SectionPersonalStatement,
    SectionResearchProducts,
    SectionExperiences,
    SectionMiscellaneous,
    SectionProgramPreference,
  }

  sections := make([]SectionStatus, len(evaluators))
  g, gctx := errgroup.WithContext(ctx)
  for i := range evaluators {
    i := i
    g.Go(func() error {
      status, err := evaluators[i](gctx, userID)
      if err != nil {
        ps.log.Warn("Section evaluator failed, counting section as incomplete", "section", sectionNames[i], "user_id", userID, "error", err)
        sections[i] = SectionStatus{Section: sectionNames[i], Complete: false, Status: StatusNotStarted}
        return nil
      }
      sections[i] = status
      return nil
    })
  }
  _ = g.Wait()
  return sections
}

func (ps *progressService) evaluatePersonalStatement(ctx context.Context, userID uuid.UUID) (SectionStatus, error) {
  statement, err := ps.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return SectionStatus{}, err
  }
  status := SectionStatus{Section: SectionPersonalStatement, Status: StatusNotStarted}
  if statement == nil {
    return status, nil
  }
  if statement.IsComplete {
    status.Complete = true
    status.Status = StatusCompleted
  } else {
    status.Status = StatusInProgress
  }
  return status, nil
}

func (ps *progressService) evaluateResearchProducts(ctx context.Context, userID uuid.UUID) (SectionStatus, error) {
  products, err := ps.researchRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return SectionStatus{}, err
  }
  status := SectionStatus{Section: SectionResearchProducts, ItemCount: len(products)}
  if len(products) == 0 {
    status.Status = StatusNotStarted
    return status, nil
  }
  allComplete := true
  for _, p := range products {
    if !p.IsComplete {
      allComplete = false
      break
    }
  }
  if allComplete {
    status.Complete = true
    status.Status = StatusCompleted
  } else {
    status.Status = StatusInProgress
  }
  return status, nil
}

func (ps *progressService) evaluateExperiences(ctx context.Context, userID uuid.UUID) (SectionStatus, error) {
  experiences, err := ps.experienceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return SectionStatus{}, err
  }
  status := SectionStatus{Section: SectionExperiences, ItemCount: len(experiences)}
  if len(experiences) == 0 {
    status.Status = StatusNotStarted
    return status, nil
  }
  allComplete := true
  mostMeaningful := 0
  for _, e := range experiences {
    if !e.IsComplete {
      allComplete = false
    }
    if e.IsMostMeaningful {
      mostMeaningful++
    }
  }
  status.MostMeaningfulCount = mostMeaningful
  // The status text tracks item completeness only; the section-complete
  // boolean additionally requires a most-meaningful pick.
  if allComplete {
    status.Status = StatusCompleted
    status.Complete = mostMeaningful > 0
  } else {
    status.Status = StatusInProgress
  }
  return status, nil
}

func (ps *progressService) evaluateMiscellaneous(ctx context.Context, userID uuid.UUID) (SectionStatus, error) {
  misc, err := ps.miscRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return SectionStatus{}, err
  }
  status := SectionStatus{Section: SectionMiscellaneous, Status: StatusNotStarted}
  if misc == nil {
    return status, nil
  }
  if misc.IsComplete {
    status.Complete = true
    status.Status = StatusCompleted
  } else {
    status.Status = StatusInProgress
  }
  return status, nil
}

func (ps *progressService) evaluateProgramPreference(ctx context.Context, userID uuid.UUID) (SectionStatus, error) {
  preference, err := ps.preferenceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return SectionStatus{}, err
  }
  status := SectionStatus{Section: SectionProgramPreference, Status: StatusNotStarted}
  if preference == nil {
    return status, nil
  }
  if preference.IsComplete {
    status.Complete = true
    status.Status = StatusCompleted
  } else {
    status.Status = StatusInProgress
  }
  return status, nil
}
