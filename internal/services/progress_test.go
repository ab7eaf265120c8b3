package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/matchwise/matchwise-backend/internal/logger"
	"github.com/matchwise/matchwise-backend/internal/repos"
	"github.com/matchwise/matchwise-backend/internal/types"
)

type progressTestEnv struct {
	db             *gorm.DB
	userID         uuid.UUID
	userRepo       repos.UserRepo
	statementRepo  repos.PersonalStatementRepo
	researchRepo   repos.ResearchProductRepo
	experienceRepo repos.ExperienceRepo
	miscRepo       repos.MiscQuestionRepo
	preferenceRepo repos.ProgramPreferenceRepo
	service        ProgressService
}

func newProgressTestEnv(t *testing.T) *progressTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// Every new pool connection to :memory: is a fresh empty database; the
	// concurrent section evaluators must all share the one that was migrated.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&types.User{},
		&types.PersonalStatement{},
		&types.ResearchProduct{},
		&types.Experience{},
		&types.MiscellaneousQuestion{},
		&types.ProgramPreference{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	userRepo := repos.NewUserRepo(db, log)
	statementRepo := repos.NewPersonalStatementRepo(db, log)
	researchRepo := repos.NewResearchProductRepo(db, log)
	experienceRepo := repos.NewExperienceRepo(db, log)
	miscRepo := repos.NewMiscQuestionRepo(db, log)
	preferenceRepo := repos.NewProgramPreferenceRepo(db, log)

	user := &types.User{
		ID:            uuid.New(),
		Email:         "applicant@example.com",
		Password:      "hashed",
		FirstName:     "Alex",
		LastName:      "Rivera",
		TotalSections: TotalApplicationSections,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return &progressTestEnv{
		db:             db,
		userID:         user.ID,
		userRepo:       userRepo,
		statementRepo:  statementRepo,
		researchRepo:   researchRepo,
		experienceRepo: experienceRepo,
		miscRepo:       miscRepo,
		preferenceRepo: preferenceRepo,
		service:        NewProgressService(db, log, userRepo, statementRepo, researchRepo, experienceRepo, miscRepo, preferenceRepo),
	}
}

func (env *progressTestEnv) addStatement(t *testing.T, complete bool) {
	t.Helper()
	if err := env.db.Create(&types.PersonalStatement{
		ID:         uuid.New(),
		UserID:     env.userID,
		Motivation: "why this specialty",
		IsComplete: complete,
	}).Error; err != nil {
		t.Fatalf("failed to create statement: %v", err)
	}
}

func (env *progressTestEnv) addResearch(t *testing.T, complete bool) {
	t.Helper()
	if err := env.db.Create(&types.ResearchProduct{
		ID:         uuid.New(),
		UserID:     env.userID,
		Title:      "Outcomes study",
		Type:       types.ResearchTypeJournalArticle,
		Status:     types.ResearchStatusPublished,
		IsComplete: complete,
	}).Error; err != nil {
		t.Fatalf("failed to create research product: %v", err)
	}
}

func (env *progressTestEnv) addExperience(t *testing.T, complete, mostMeaningful bool) {
	t.Helper()
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := env.db.Create(&types.Experience{
		ID:               uuid.New(),
		UserID:           env.userID,
		Organization:     "County Hospital",
		Position:         "Research Assistant",
		StartDate:        &start,
		IsMostMeaningful: mostMeaningful,
		IsComplete:       complete,
	}).Error; err != nil {
		t.Fatalf("failed to create experience: %v", err)
	}
}

func (env *progressTestEnv) addMisc(t *testing.T, complete bool) {
	t.Helper()
	answered := false
	if err := env.db.Create(&types.MiscellaneousQuestion{
		ID:                       uuid.New(),
		UserID:                   env.userID,
		ProfessionalismHasIssues: &answered,
		IsComplete:               complete,
	}).Error; err != nil {
		t.Fatalf("failed to create misc questions: %v", err)
	}
}

func (env *progressTestEnv) addPreference(t *testing.T, complete bool) {
	t.Helper()
	if err := env.db.Create(&types.ProgramPreference{
		ID:               uuid.New(),
		UserID:           env.userID,
		PrimarySpecialty: "Dermatology",
		IsComplete:       complete,
	}).Error; err != nil {
		t.Fatalf("failed to create preference: %v", err)
	}
}

func (env *progressTestEnv) sectionByName(t *testing.T, sections []SectionStatus, name string) SectionStatus {
	t.Helper()
	for _, s := range sections {
		if s.Section == name {
			return s
		}
	}
	t.Fatalf("section %q not found", name)
	return SectionStatus{}
}

func (env *progressTestEnv) storedPercentage(t *testing.T) int {
	t.Helper()
	users, err := env.userRepo.GetByIDs(context.Background(), nil, []uuid.UUID{env.userID})
	if err != nil || len(users) == 0 {
		t.Fatalf("failed to reload user: %v", err)
	}
	return users[0].PercentageComplete
}

func TestRecomputeProgress_EmptyApplicationIsZeroPercent(t *testing.T) {
	env := newProgressTestEnv(t)

	snapshot, sections, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if snapshot.CompletedSections != 0 || snapshot.PercentageComplete != 0 {
		t.Fatalf("expected 0 completed / 0%%, got %d / %d%%", snapshot.CompletedSections, snapshot.PercentageComplete)
	}
	if snapshot.TotalSections != TotalApplicationSections {
		t.Fatalf("expected %d total sections, got %d", TotalApplicationSections, snapshot.TotalSections)
	}
	for _, s := range sections {
		if s.Status != StatusNotStarted {
			t.Fatalf("section %s: expected %q, got %q", s.Section, StatusNotStarted, s.Status)
		}
		if s.Complete {
			t.Fatalf("section %s: empty section reported complete", s.Section)
		}
	}
	if got := env.storedPercentage(t); got != 0 {
		t.Fatalf("expected persisted percentage 0, got %d", got)
	}
}

func TestRecomputeProgress_PercentageStepsByTwenty(t *testing.T) {
	env := newProgressTestEnv(t)
	steps := []struct {
		add  func()
		want int
	}{
		{func() { env.addStatement(t, true) }, 20},
		{func() { env.addResearch(t, true) }, 40},
		{func() { env.addExperience(t, true, true) }, 60},
		{func() { env.addMisc(t, true) }, 80},
		{func() { env.addPreference(t, true) }, 100},
	}
	for _, step := range steps {
		step.add()
		snapshot, _, err := env.service.RecomputeProgress(context.Background(), env.userID)
		if err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		if snapshot.PercentageComplete != step.want {
			t.Fatalf("expected %d%%, got %d%%", step.want, snapshot.PercentageComplete)
		}
		if got := env.storedPercentage(t); got != step.want {
			t.Fatalf("expected persisted %d%%, got %d%%", step.want, got)
		}
	}
}

func TestRecomputeProgress_IsIdempotent(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addStatement(t, true)
	env.addMisc(t, true)

	first, _, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	second, _, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	if *first != *second {
		t.Fatalf("recompute not idempotent: %+v vs %+v", first, second)
	}
	if first.PercentageComplete != 40 {
		t.Fatalf("expected 40%%, got %d%%", first.PercentageComplete)
	}
}

func TestRecomputeProgress_ExperiencesNeedMostMeaningfulPick(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addExperience(t, true, false)

	_, sections, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	section := env.sectionByName(t, sections, SectionExperiences)
	if section.Status != StatusCompleted {
		t.Fatalf("expected status text %q, got %q", StatusCompleted, section.Status)
	}
	if section.Complete {
		t.Fatalf("section should not count complete without a most meaningful experience")
	}

	env.addExperience(t, true, true)
	_, sections, err = env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	section = env.sectionByName(t, sections, SectionExperiences)
	if !section.Complete {
		t.Fatalf("section should count complete once a most meaningful experience exists")
	}
	if section.MostMeaningfulCount != 1 {
		t.Fatalf("expected 1 most meaningful, got %d", section.MostMeaningfulCount)
	}
}

func TestRecomputeProgress_OneIncompleteItemHoldsSectionInProgress(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addResearch(t, true)
	env.addResearch(t, false)

	_, sections, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	section := env.sectionByName(t, sections, SectionResearchProducts)
	if section.Status != StatusInProgress {
		t.Fatalf("expected %q, got %q", StatusInProgress, section.Status)
	}
	if section.Complete {
		t.Fatalf("section with an incomplete item must not count complete")
	}
	if section.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", section.ItemCount)
	}
}

func TestRecomputeProgress_IncompleteSingletonIsInProgressNotStarted(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addStatement(t, false)

	_, sections, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	section := env.sectionByName(t, sections, SectionPersonalStatement)
	if section.Status != StatusInProgress {
		t.Fatalf("expected %q, got %q", StatusInProgress, section.Status)
	}
}

func TestRecomputeProgress_FailingEvaluatorCountsSectionIncomplete(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addStatement(t, true)
	env.addMisc(t, true)

	if err := env.db.Exec("DROP TABLE research_product").Error; err != nil {
		t.Fatalf("failed to drop research table: %v", err)
	}

	snapshot, sections, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute must survive a failing section store: %v", err)
	}
	section := env.sectionByName(t, sections, SectionResearchProducts)
	if section.Complete {
		t.Fatalf("failing section must count incomplete, not complete")
	}
	if section.Status != StatusNotStarted {
		t.Fatalf("expected %q for failing section, got %q", StatusNotStarted, section.Status)
	}
	if snapshot.CompletedSections != 2 || snapshot.PercentageComplete != 40 {
		t.Fatalf("expected 2 completed / 40%%, got %d / %d%%", snapshot.CompletedSections, snapshot.PercentageComplete)
	}
	if got := env.storedPercentage(t); got != 40 {
		t.Fatalf("expected persisted 40%%, got %d", got)
	}
}

func TestIsReady_ThresholdIsInclusive(t *testing.T) {
	env := newProgressTestEnv(t)
	ctx := context.Background()

	if err := env.userRepo.UpdateProgressSnapshot(ctx, nil, env.userID, TotalApplicationSections, 4, 80); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	ready, pct, err := env.service.IsReady(ctx, env.userID)
	if err != nil {
		t.Fatalf("readiness check failed: %v", err)
	}
	if ready || pct != 80 {
		t.Fatalf("expected not ready at 80%%, got ready=%v pct=%d", ready, pct)
	}

	if err := env.userRepo.UpdateProgressSnapshot(ctx, nil, env.userID, TotalApplicationSections, 5, 85); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	ready, pct, err = env.service.IsReady(ctx, env.userID)
	if err != nil {
		t.Fatalf("readiness check failed: %v", err)
	}
	if !ready || pct != 85 {
		t.Fatalf("expected ready at 85%%, got ready=%v pct=%d", ready, pct)
	}
}
