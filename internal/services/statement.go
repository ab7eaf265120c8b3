package services

import (
  "context"
  "fmt"
  "strings"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/matchwise/matchwise-backend/internal/catalog"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/normalization"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

type StatementInput struct {
  Specialties           []string                    `json:"specialties"`
  Motivation            string                      `json:"motivation"`
  Characteristics       []string                    `json:"characteristics"`
  CharacteristicStories []types.CharacteristicStory `json:"characteristic_stories"`
}

type StatementService interface {
  GetByUser(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error)
  Save(ctx context.Context, userID uuid.UUID, input StatementInput) (*types.PersonalStatement, *ProgressSnapshot, error)
  GenerateThesisStatements(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error)
  SelectThesis(ctx context.Context, userID uuid.UUID, thesis string) (*types.PersonalStatement, error)
  DraftFinalStatement(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error)
  Finalize(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, *ProgressSnapshot, error)
}

type statementService struct {
  db              *gorm.DB
  log             *logger.Logger
  statementRepo   repos.PersonalStatementRepo
  openaiClient    OpenAIClient
  progressService ProgressService
  specialtyCatalog *catalog.Catalog
}

func NewStatementService(
  db *gorm.DB,
  log *logger.Logger,
  statementRepo repos.PersonalStatementRepo,
  openaiClient OpenAIClient,
  progressService ProgressService,
  specialtyCatalog *catalog.Catalog,
) StatementService {
  serviceLog := log.With("service", "StatementService")
  return &statementService{
    db:               db,
    log:              serviceLog,
    statementRepo:    statementRepo,
    openaiClient:     openaiClient,
    progressService:  progressService,
    specialtyCatalog: specialtyCatalog,
  }
}

func (ss *statementService) GetByUser(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error) {
  return ss.statementRepo.GetByUserID(ctx, nil, userID)
}

func (ss *statementService) Save(ctx context.Context, userID uuid.UUID, input StatementInput) (*types.PersonalStatement, *ProgressSnapshot, error) {
  input.Specialties = normalization.TrimInputStrings(input.Specialties)
  input.Characteristics = normalization.TrimInputStrings(input.Characteristics)
  input.Motivation = normalization.TrimInputString(input.Motivation)

  if len(input.Characteristics) > types.MaxCharacteristics {
    return nil, nil, fmt.Errorf("At most %d characteristics are allowed", types.MaxCharacteristics)
  }
  if err := ss.specialtyCatalog.ValidateSpecialties(input.Specialties); err != nil {
    return nil, nil, err
  }

  existing, err := ss.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }

  statement := &types.PersonalStatement{UserID: userID}
  if existing != nil {
    statement = existing
  }
  statement.Specialties = input.Specialties
  statement.Motivation = input.Motivation
  statement.Characteristics = input.Characteristics
  statement.CharacteristicStories = input.CharacteristicStories

  saved, err := ss.statementRepo.Upsert(ctx, nil, statement)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to save personal statement: %w", err)
  }

  snapshot := ss.recomputeBestEffort(ctx, userID)
  return saved, snapshot, nil
}

func (ss *statementService) GenerateThesisStatements(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error) {
  statement, err := ss.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }
  if statement == nil {
    return nil, fmt.Errorf("Save specialties and motivation before generating thesis statements")
  }
  if statement.Motivation == "" {
    return nil, fmt.Errorf("A motivation is required to generate thesis statements")
  }

  schema := map[string]any{
    "type": "object",
    "properties": map[string]any{
      "thesis_statements": map[string]any{
        "type":     "array",
        "items":    map[string]any{"type": "string"},
        "minItems": 3,
        "maxItems": 3,
      },
    },
    "required":             []string{"thesis_statements"},
    "additionalProperties": false,
  }

  system := "You help medical students draft residency personal statements. Produce exactly three candidate thesis statements, each a single sentence, grounded in the applicant's own words."
  user := thesisPrompt(statement)

  obj, err := ss.openaiClient.GenerateJSON(ctx, system, user, "thesis_statements", schema)
  if err != nil {
    return nil, fmt.Errorf("Failed to generate thesis statements: %w", err)
  }

  theses := stringSliceFromAny(obj["thesis_statements"])
  if len(theses) == 0 {
    return nil, fmt.Errorf("Model returned no thesis statements")
  }
  statement.ThesisStatements = theses

  saved, err := ss.statementRepo.Upsert(ctx, nil, statement)
  if err != nil {
    return nil, fmt.Errorf("Failed to save thesis statements: %w", err)
  }
  return saved, nil
}

func (ss *statementService) SelectThesis(ctx context.Context, userID uuid.UUID, thesis string) (*types.PersonalStatement, error) {
  thesis = normalization.TrimInputString(thesis)
  if thesis == "" {
    return nil, fmt.Errorf("A thesis statement is required")
  }
  statement, err := ss.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }
  if statement == nil {
    return nil, fmt.Errorf("No personal statement to select a thesis for")
  }
  statement.SelectedThesisStatement = thesis

  saved, err := ss.statementRepo.Upsert(ctx, nil, statement)
  if err != nil {
    return nil, fmt.Errorf("Failed to save selected thesis: %w", err)
  }
  return saved, nil
}

func (ss *statementService) DraftFinalStatement(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, error) {
  statement, err := ss.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }
  if statement == nil || statement.SelectedThesisStatement == "" {
    return nil, fmt.Errorf("Select a thesis statement before drafting")
  }

  schema := map[string]any{
    "type": "object",
    "properties": map[string]any{
      "statement": map[string]any{"type": "string"},
    },
    "required":             []string{"statement"},
    "additionalProperties": false,
  }

  system := "You help medical students draft residency personal statements. Write a cohesive personal statement of roughly 650-800 words built around the given thesis, weaving in the applicant's stories. First person, no headings, no fabricated facts."
  user := draftPrompt(statement)

  obj, err := ss.openaiClient.GenerateJSON(ctx, system, user, "personal_statement_draft", schema)
  if err != nil {
    return nil, fmt.Errorf("Failed to draft personal statement: %w", err)
  }

  draft, _ := obj["statement"].(string)
  draft = strings.TrimSpace(draft)
  if draft == "" {
    return nil, fmt.Errorf("Model returned an empty draft")
  }

  statement.FinalStatement = draft
  statement.WordCount = len(strings.Fields(draft))

  saved, err := ss.statementRepo.Upsert(ctx, nil, statement)
  if err != nil {
    return nil, fmt.Errorf("Failed to save drafted statement: %w", err)
  }
  return saved, nil
}

// Finalize is the explicit "mark as complete" action: the completion flag on
// a personal statement is declared, not derived.
func (ss *statementService) Finalize(ctx context.Context, userID uuid.UUID) (*types.PersonalStatement, *ProgressSnapshot, error) {
  statement, err := ss.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }
  if statement == nil || strings.TrimSpace(statement.FinalStatement) == "" {
    return nil, nil, fmt.Errorf("A final statement is required before marking the section complete")
  }

  statement.IsComplete = true
  saved, err := ss.statementRepo.Upsert(ctx, nil, statement)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to finalize personal statement: %w", err)
  }

  snapshot := ss.recomputeBestEffort(ctx, userID)
  return saved, snapshot, nil
}

func (ss *statementService) recomputeBestEffort(ctx context.Context, userID uuid.UUID) *ProgressSnapshot {
  snapshot, _, err := ss.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    ss.log.Warn("Progress recomputation failed after statement write", "user_id", userID, "error", err)
    return nil
  }
  return snapshot
}

func thesisPrompt(statement *types.PersonalStatement) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Target specialties: %s\n", strings.Join(statement.Specialties, ", "))
  fmt.Fprintf(&b, "Motivation for the specialty:\n%s\n", statement.Motivation)
  if len(statement.Characteristics) > 0 {
    fmt.Fprintf(&b, "Self-described characteristics: %s\n", strings.Join(statement.Characteristics, ", "))
  }
  for _, cs := range statement.CharacteristicStories {
    if cs.Story == "" {
      continue
    }
    fmt.Fprintf(&b, "Story illustrating %q:\n%s\n", cs.Characteristic, cs.Story)
  }
  return b.String()
}

func draftPrompt(statement *types.PersonalStatement) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Thesis statement: %s\n", statement.SelectedThesisStatement)
  fmt.Fprintf(&b, "Target specialties: %s\n", strings.Join(statement.Specialties, ", "))
  fmt.Fprintf(&b, "Motivation:\n%s\n", statement.Motivation)
  for _, cs := range statement.CharacteristicStories {
    if cs.Story == "" {
      continue
    }
    fmt.Fprintf(&b, "Story illustrating %q:\n%s\n", cs.Characteristic, cs.Story)
  }
  return b.String()
}

func stringSliceFromAny(v any) []string {
  items, ok := v.([]any)
  if !ok {
    return nil
  }
  out := make([]string, 0, len(items))
  for _, item := range items {
    if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
      out = append(out, strings.TrimSpace(s))
    }
  }
  return out
}
