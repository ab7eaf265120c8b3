package services

import (
	"context"
	"strings"
	"testing"

	"github.com/matchwise/matchwise-backend/internal/catalog"
	"github.com/matchwise/matchwise-backend/internal/logger"
	"github.com/matchwise/matchwise-backend/internal/types"
)

func newStatementService(t *testing.T, env *progressTestEnv) StatementService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return NewStatementService(env.db, log, env.statementRepo, nil, env.service, catalog.Load(log))
}

func TestStatementSave_UpsertsSingleRowAndRecomputes(t *testing.T) {
	env := newProgressTestEnv(t)
	svc := newStatementService(t, env)
	ctx := context.Background()

	saved, snapshot, err := svc.Save(ctx, env.userID, StatementInput{
		Specialties: []string{"Dermatology"},
		Motivation:  "I want to treat skin disease.",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.IsComplete {
		t.Fatalf("a plain save must not mark the statement complete")
	}
	if snapshot == nil || snapshot.PercentageComplete != 0 {
		t.Fatalf("in-progress statement should not move the percentage, got %+v", snapshot)
	}

	// Second save reuses the row.
	again, _, err := svc.Save(ctx, env.userID, StatementInput{
		Specialties: []string{"Dermatology"},
		Motivation:  "Updated motivation.",
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("expected upsert to keep the row, got new id %s", again.ID)
	}

	var count int64
	if err := env.db.Model(&types.PersonalStatement{}).Where("user_id = ?", env.userID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 statement row, got %d", count)
	}
}

func TestStatementSave_RejectsTooManyCharacteristics(t *testing.T) {
	env := newProgressTestEnv(t)
	svc := newStatementService(t, env)

	_, _, err := svc.Save(context.Background(), env.userID, StatementInput{
		Specialties:     []string{"Dermatology"},
		Characteristics: []string{"curious", "resilient", "kind", "thorough"},
	})
	if err == nil {
		t.Fatalf("expected error for more than %d characteristics", types.MaxCharacteristics)
	}
}

func TestStatementFinalize_RequiresDraftAndMovesProgress(t *testing.T) {
	env := newProgressTestEnv(t)
	svc := newStatementService(t, env)
	ctx := context.Background()

	if _, _, err := svc.Finalize(ctx, env.userID); err == nil {
		t.Fatalf("finalize with no statement must fail")
	}

	if _, _, err := svc.Save(ctx, env.userID, StatementInput{Motivation: "m"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, _, err := svc.Finalize(ctx, env.userID); err == nil {
		t.Fatalf("finalize without a drafted final statement must fail")
	}

	statement, err := env.statementRepo.GetByUserID(ctx, nil, env.userID)
	if err != nil || statement == nil {
		t.Fatalf("failed to reload statement: %v", err)
	}
	statement.FinalStatement = "My journey toward dermatology began in clinic."
	if _, err := env.statementRepo.Upsert(ctx, nil, statement); err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}

	finalized, snapshot, err := svc.Finalize(ctx, env.userID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if !finalized.IsComplete {
		t.Fatalf("expected statement marked complete")
	}
	if snapshot == nil || snapshot.PercentageComplete != 20 {
		t.Fatalf("expected 20%% after finalizing the statement, got %+v", snapshot)
	}
}

func TestStringSliceFromAny(t *testing.T) {
	got := stringSliceFromAny([]any{"a", "", "  b  ", 3, "c"})
	if strings.Join(got, ",") != "a,b,c" {
		t.Fatalf("unexpected result: %v", got)
	}
	if stringSliceFromAny("not a slice") != nil {
		t.Fatalf("expected nil for non-slice input")
	}
}
