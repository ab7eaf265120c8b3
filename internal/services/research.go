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

type ResearchInput struct {
  Title   string   `json:"title"`
  Type    string   `json:"type"`
  Status  string   `json:"status"`
  Authors []string `json:"authors"`
  Journal string   `json:"journal"`
  Volume  string   `json:"volume"`
  Issue   string   `json:"issue"`
  Pages   string   `json:"pages"`
  PMID    string   `json:"pmid"`
  PubDate string   `json:"pub_date"`
}

type ResearchService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.ResearchProduct, error)
  Create(ctx context.Context, userID uuid.UUID, input ResearchInput) (*types.ResearchProduct, *ProgressSnapshot, error)
  Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ResearchInput) (*types.ResearchProduct, *ProgressSnapshot, error)
  Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ProgressSnapshot, error)
  Enrich(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*types.ResearchProduct, *ProgressSnapshot, error)
}

type researchService struct {
  db              *gorm.DB
  log             *logger.Logger
  researchRepo    repos.ResearchProductRepo
  pubmedClient    PubMedClient
  progressService ProgressService
}

func NewResearchService(
  db *gorm.DB,
  log *logger.Logger,
  researchRepo repos.ResearchProductRepo,
  pubmedClient PubMedClient,
  progressService ProgressService,
) ResearchService {
  serviceLog := log.With("service", "ResearchService")
  return &researchService{
    db:              db,
    log:             serviceLog,
    researchRepo:    researchRepo,
    pubmedClient:    pubmedClient,
    progressService: progressService,
  }
}

func (rs *researchService) List(ctx context.Context, userID uuid.UUID) ([]*types.ResearchProduct, error) {
  return rs.researchRepo.GetByUserID(ctx, nil, userID)
}

func (rs *researchService) Create(ctx context.Context, userID uuid.UUID, input ResearchInput) (*types.ResearchProduct, *ProgressSnapshot, error) {
  if err := validateResearchInput(&input); err != nil {
    return nil, nil, err
  }
  product := &types.ResearchProduct{ID: uuid.New(), UserID: userID}
  applyResearchInput(product, input)

  created, err := rs.researchRepo.Create(ctx, nil, []*types.ResearchProduct{product})
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to create research product: %w", err)
  }

  snapshot := rs.recomputeBestEffort(ctx, userID)
  return created[0], snapshot, nil
}

func (rs *researchService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input ResearchInput) (*types.ResearchProduct, *ProgressSnapshot, error) {
  if err := validateResearchInput(&input); err != nil {
    return nil, nil, err
  }
  product, err := rs.getOwned(ctx, userID, id)
  if err != nil {
    return nil, nil, err
  }
  applyResearchInput(product, input)

  updated, err := rs.researchRepo.Update(ctx, nil, product)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to update research product: %w", err)
  }

  snapshot := rs.recomputeBestEffort(ctx, userID)
  return updated, snapshot, nil
}

func (rs *researchService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*ProgressSnapshot, error) {
  if _, err := rs.getOwned(ctx, userID, id); err != nil {
    return nil, err
  }
  if err := rs.researchRepo.Delete(ctx, nil, id); err != nil {
    return nil, fmt.Errorf("Failed to delete research product: %w", err)
  }
  snapshot := rs.recomputeBestEffort(ctx, userID)
  return snapshot, nil
}

// Enrich fills in citation metadata from PubMed, by PMID when the product
// already carries one and by title search otherwise. Fields the user has
// filled in by hand are never overwritten.
func (rs *researchService) Enrich(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*types.ResearchProduct, *ProgressSnapshot, error) {
  product, err := rs.getOwned(ctx, userID, id)
  if err != nil {
    return nil, nil, err
  }

  var citation *Citation
  if product.PMID != "" {
    citation, err = rs.pubmedClient.LookupByPMID(ctx, product.PMID)
  } else if product.Title != "" {
    citation, err = rs.pubmedClient.SearchByTitle(ctx, product.Title)
  } else {
    return nil, nil, fmt.Errorf("A PMID or title is required to enrich a research product")
  }
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to look up citation: %w", err)
  }
  if citation == nil {
    return nil, nil, fmt.Errorf("No matching PubMed record found")
  }

  mergeCitation(product, citation)
  product.IsComplete = deriveResearchComplete(product)

  updated, err := rs.researchRepo.Update(ctx, nil, product)
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to save enriched research product: %w", err)
  }

  snapshot := rs.recomputeBestEffort(ctx, userID)
  return updated, snapshot, nil
}

func (rs *researchService) getOwned(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*types.ResearchProduct, error) {
  products, err := rs.researchRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load research product: %w", err)
  }
  if len(products) == 0 || products[0].UserID != userID {
    return nil, fmt.Errorf("Research product not found")
  }
  return products[0], nil
}

func (rs *researchService) recomputeBestEffort(ctx context.Context, userID uuid.UUID) *ProgressSnapshot {
  snapshot, _, err := rs.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    rs.log.Warn("Progress recomputation failed after research write", "user_id", userID, "error", err)
    return nil
  }
  return snapshot
}

func validateResearchInput(input *ResearchInput) error {
  input.Title = normalization.TrimInputString(input.Title)
  input.Journal = normalization.TrimInputString(input.Journal)
  input.Authors = normalization.TrimInputStrings(input.Authors)

  if input.Title == "" {
    return fmt.Errorf("A title is required")
  }
  switch input.Type {
  case "", types.ResearchTypeJournalArticle, types.ResearchTypeAbstract, types.ResearchTypePoster, types.ResearchTypePodium:
  default:
    return fmt.Errorf("Unknown research product type: %s", input.Type)
  }
  switch input.Status {
  case "", types.ResearchStatusPublished, types.ResearchStatusAccepted, types.ResearchStatusSubmitted, types.ResearchStatusInProgress:
  default:
    return fmt.Errorf("Unknown research product status: %s", input.Status)
  }
  if input.Type == "" {
    input.Type = types.ResearchTypeJournalArticle
  }
  if input.Status == "" {
    input.Status = types.ResearchStatusInProgress
  }
  return nil
}

func applyResearchInput(product *types.ResearchProduct, input ResearchInput) {
  product.Title = input.Title
  product.Type = input.Type
  product.Status = input.Status
  product.Authors = input.Authors
  product.Journal = input.Journal
  product.Volume = input.Volume
  product.Issue = input.Issue
  product.Pages = input.Pages
  product.PMID = input.PMID
  product.PubDate = input.PubDate
  product.IsComplete = deriveResearchComplete(product)
}

func mergeCitation(product *types.ResearchProduct, citation *Citation) {
  if product.PMID == "" {
    product.PMID = citation.PMID
  }
  if len(product.Authors) == 0 {
    product.Authors = citation.Authors
  }
  if product.Journal == "" {
    product.Journal = citation.Journal
  }
  if product.Volume == "" {
    product.Volume = citation.Volume
  }
  if product.Issue == "" {
    product.Issue = citation.Issue
  }
  if product.Pages == "" {
    product.Pages = citation.Pages
  }
  if product.PubDate == "" {
    product.PubDate = citation.PubDate
  }
}

// A research product is complete once it names its authors and, for journal
// articles, the journal it appeared in. Status is tracked separately: an
// in-progress manuscript with full metadata still counts.
func deriveResearchComplete(product *types.ResearchProduct) bool {
  if product.Title == "" || len(product.Authors) == 0 {
    return false
  }
  if product.Type == types.ResearchTypeJournalArticle && product.Journal == "" {
    return false
  }
  return true
}
