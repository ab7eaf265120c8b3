package services

import (
  "bytes"
  "context"
  "fmt"
  "strings"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/jung-kurt/gofpdf"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
)

// NotReadyError is returned when an export is requested below the readiness
// threshold. Handlers map it to a 403 carrying the current percentage.
type NotReadyError struct {
  PercentageComplete int
}

func (e *NotReadyError) Error() string {
  return fmt.Sprintf("Application is %d%% complete; at least %d%% is required to export", e.PercentageComplete, ReadinessThreshold)
}

type ExportService interface {
  ExportPacket(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type exportService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  statementRepo   repos.PersonalStatementRepo
  experienceRepo  repos.ExperienceRepo
  researchRepo    repos.ResearchProductRepo
  miscRepo        repos.MiscQuestionRepo
  preferenceRepo  repos.ProgramPreferenceRepo
  applicationRepo repos.ApplicationRepo
  progressService ProgressService
  emailService    EmailService
}

func NewExportService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  statementRepo repos.PersonalStatementRepo,
  experienceRepo repos.ExperienceRepo,
  researchRepo repos.ResearchProductRepo,
  miscRepo repos.MiscQuestionRepo,
  preferenceRepo repos.ProgramPreferenceRepo,
  applicationRepo repos.ApplicationRepo,
  progressService ProgressService,
  emailService EmailService,
) ExportService {
  serviceLog := log.With("service", "ExportService")
  return &exportService{
    db:              db,
    log:             serviceLog,
    userRepo:        userRepo,
    statementRepo:   statementRepo,
    experienceRepo:  experienceRepo,
    researchRepo:    researchRepo,
    miscRepo:        miscRepo,
    preferenceRepo:  preferenceRepo,
    applicationRepo: applicationRepo,
    progressService: progressService,
    emailService:    emailService,
  }
}

// ExportPacket renders the full application as a PDF. Progress is recomputed
// fresh before the readiness gate so a stale snapshot can neither block nor
// permit an export.
func (xs *exportService) ExportPacket(ctx context.Context, userID uuid.UUID) ([]byte, error) {
  snapshot, sections, err := xs.progressService.RecomputeProgress(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to recompute application progress: %w", err)
  }
  if snapshot.PercentageComplete < ReadinessThreshold {
    return nil, &NotReadyError{PercentageComplete: snapshot.PercentageComplete}
  }

  users, err := xs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  user := users[0]

  statement, err := xs.statementRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load personal statement: %w", err)
  }
  experiences, err := xs.experienceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load experiences: %w", err)
  }
  products, err := xs.researchRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load research products: %w", err)
  }
  misc, err := xs.miscRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load miscellaneous questions: %w", err)
  }
  preference, err := xs.preferenceRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load program preferences: %w", err)
  }

  pdfBytes, err := renderPacket(user, snapshot, sections, statement, experiences, products, misc, preference)
  if err != nil {
    return nil, fmt.Errorf("Failed to render application packet: %w", err)
  }

  xs.markExported(ctx, userID)

  if xs.emailService != nil {
    if emailErr := xs.emailService.SendExportNotice(ctx, user, snapshot.PercentageComplete); emailErr != nil {
      xs.log.Warn("Failed to send export notice", "user_id", userID, "error", emailErr)
    }
  }

  return pdfBytes, nil
}

// markExported stamps the user's draft applications as exported. Export still
// succeeds when no application row exists; the packet itself is the product.
func (xs *exportService) markExported(ctx context.Context, userID uuid.UUID) {
  applications, err := xs.applicationRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    xs.log.Warn("Failed to load applications after export", "user_id", userID, "error", err)
    return
  }
  now := time.Now().UTC()
  for _, application := range applications {
    if application.Status != types.ApplicationStatusDraft {
      continue
    }
    application.Status = types.ApplicationStatusExported
    application.ExportedAt = &now
    if _, err := xs.applicationRepo.Update(ctx, nil, application); err != nil {
      xs.log.Warn("Failed to mark application exported", "application_id", application.ID, "error", err)
    }
  }
}

func renderPacket(
  user *types.User,
  snapshot *ProgressSnapshot,
  sections []SectionStatus,
  statement *types.PersonalStatement,
  experiences []*types.Experience,
  products []*types.ResearchProduct,
  misc *types.MiscellaneousQuestion,
  preference *types.ProgramPreference,
) ([]byte, error) {
  pdf := gofpdf.New("P", "mm", "A4", "")
  pdf.SetTitle(fmt.Sprintf("Residency Application - %s %s", user.FirstName, user.LastName), false)
  pdf.SetAutoPageBreak(true, 20)
  pdf.AddPage()

  pdf.SetFont("Helvetica", "B", 18)
  pdf.CellFormat(0, 10, fmt.Sprintf("%s %s", user.FirstName, user.LastName), "", 1, "L", false, 0, "")
  pdf.SetFont("Helvetica", "", 10)
  pdf.CellFormat(0, 6, user.Email, "", 1, "L", false, 0, "")
  pdf.CellFormat(0, 6, fmt.Sprintf("Application %d%% complete (%d of %d sections)",
    snapshot.PercentageComplete, snapshot.CompletedSections, snapshot.TotalSections), "", 1, "L", false, 0, "")
  pdf.Ln(4)

  packetHeading(pdf, "Section Status")
  for _, section := range sections {
    pdf.SetFont("Helvetica", "", 10)
    pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", sectionLabel(section.Section), section.Status), "", 1, "L", false, 0, "")
  }

  if statement != nil {
    packetHeading(pdf, "Personal Statement")
    if statement.SelectedThesisStatement != "" {
      pdf.SetFont("Helvetica", "I", 10)
      pdf.MultiCell(0, 5, statement.SelectedThesisStatement, "", "L", false)
      pdf.Ln(2)
    }
    pdf.SetFont("Helvetica", "", 10)
    pdf.MultiCell(0, 5, statement.FinalStatement, "", "L", false)
    pdf.SetFont("Helvetica", "I", 9)
    pdf.CellFormat(0, 5, fmt.Sprintf("%d words", statement.WordCount), "", 1, "R", false, 0, "")
  }

  if len(experiences) > 0 {
    packetHeading(pdf, "Experiences")
    for _, experience := range experiences {
      pdf.SetFont("Helvetica", "B", 10)
      title := fmt.Sprintf("%s, %s", experience.Position, experience.Organization)
      if experience.IsMostMeaningful {
        title += " (most meaningful)"
      }
      pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
      pdf.SetFont("Helvetica", "", 9)
      pdf.CellFormat(0, 5, experienceDates(experience), "", 1, "L", false, 0, "")
      if experience.Description != "" {
        pdf.MultiCell(0, 5, experience.Description, "", "L", false)
      }
      if experience.IsMostMeaningful && experience.MeaningfulDescription != "" {
        pdf.SetFont("Helvetica", "I", 9)
        pdf.MultiCell(0, 5, experience.MeaningfulDescription, "", "L", false)
      }
      pdf.Ln(2)
    }
  }

  if len(products) > 0 {
    packetHeading(pdf, "Research Products")
    for _, product := range products {
      pdf.SetFont("Helvetica", "", 10)
      pdf.MultiCell(0, 5, formatCitationLine(product), "", "L", false)
      pdf.Ln(1)
    }
  }

  if misc != nil {
    packetHeading(pdf, "Education and Background")
    pdf.SetFont("Helvetica", "", 10)
    for _, entry := range misc.Undergraduate {
      pdf.CellFormat(0, 5, formatEducationLine(entry), "", 1, "L", false, 0, "")
    }
    for _, entry := range misc.Graduate {
      pdf.CellFormat(0, 5, formatEducationLine(entry), "", 1, "L", false, 0, "")
    }
    if len(misc.HonorsAwards) > 0 {
      pdf.CellFormat(0, 5, "Honors: "+strings.Join(misc.HonorsAwards, "; "), "", 1, "L", false, 0, "")
    }
    if misc.ProfessionalismHasIssues != nil {
      answer := "No"
      if *misc.ProfessionalismHasIssues {
        answer = "Yes - " + misc.ProfessionalismExplanation
      }
      pdf.MultiCell(0, 5, "Professionalism issues: "+answer, "", "L", false)
    }
  }

  if preference != nil {
    packetHeading(pdf, "Program Preferences")
    pdf.SetFont("Helvetica", "", 10)
    pdf.CellFormat(0, 5, "Primary specialty: "+preference.PrimarySpecialty, "", 1, "L", false, 0, "")
    if len(preference.OtherSpecialties) > 0 {
      pdf.CellFormat(0, 5, "Also considering: "+strings.Join(preference.OtherSpecialties, ", "), "", 1, "L", false, 0, "")
    }
    if len(preference.PreferredStates) > 0 {
      pdf.CellFormat(0, 5, "Preferred states: "+strings.Join(preference.PreferredStates, ", "), "", 1, "L", false, 0, "")
    }
    pdf.CellFormat(0, 5, fmt.Sprintf("Setting: %s, program size: %s",
      preference.HospitalPreference, preference.ResidentCountPreference), "", 1, "L", false, 0, "")
  }

  var buf bytes.Buffer
  if err := pdf.Output(&buf); err != nil {
    return nil, err
  }
  return buf.Bytes(), nil
}

func packetHeading(pdf *gofpdf.Fpdf, title string) {
  pdf.Ln(3)
  pdf.SetFont("Helvetica", "B", 13)
  pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
  pdf.Ln(1)
}

func sectionLabel(section string) string {
  switch section {
  case SectionPersonalStatement:
    return "Personal Statement"
  case SectionResearchProducts:
    return "Research Products"
  case SectionExperiences:
    return "Experiences"
  case SectionMiscellaneous:
    return "Miscellaneous"
  case SectionProgramPreference:
    return "Program Preferences"
  }
  return section
}

func experienceDates(experience *types.Experience) string {
  start := ""
  if experience.StartDate != nil {
    start = experience.StartDate.Format("Jan 2006")
  }
  end := "present"
  if !experience.Current && experience.EndDate != nil {
    end = experience.EndDate.Format("Jan 2006")
  }
  if start == "" {
    return ""
  }
  return start + " - " + end
}

func formatCitationLine(product *types.ResearchProduct) string {
  parts := []string{}
  if len(product.Authors) > 0 {
    parts = append(parts, strings.Join(product.Authors, ", "))
  }
  parts = append(parts, product.Title)
  if product.Journal != "" {
    ref := product.Journal
    if product.Volume != "" {
      ref += " " + product.Volume
      if product.Issue != "" {
        ref += "(" + product.Issue + ")"
      }
    }
    if product.Pages != "" {
      ref += ":" + product.Pages
    }
    parts = append(parts, ref)
  }
  if product.PubDate != "" {
    parts = append(parts, product.PubDate)
  }
  line := strings.Join(parts, ". ")
  if product.Status != types.ResearchStatusPublished {
    line += fmt.Sprintf(" [%s]", product.Status)
  }
  if product.PMID != "" {
    line += " PMID: " + product.PMID
  }
  return line
}

func formatEducationLine(entry types.EducationEntry) string {
  line := entry.Institution
  if entry.Degree != "" {
    line += ", " + entry.Degree
  }
  if entry.FieldOfStudy != "" {
    line += " in " + entry.FieldOfStudy
  }
  if entry.GraduationYear > 0 {
    line += fmt.Sprintf(" (%d)", entry.GraduationYear)
  }
  return line
}
