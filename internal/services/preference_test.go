package services

import (
	"context"
	"testing"

	"github.com/matchwise/matchwise-backend/internal/catalog"
	"github.com/matchwise/matchwise-backend/internal/logger"
)

func newPreferenceService(t *testing.T, env *progressTestEnv) PreferenceService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return NewPreferenceService(env.db, log, env.preferenceRepo, env.service, catalog.Load(log))
}

func TestPreferenceSave_CompletesSectionImmediately(t *testing.T) {
	env := newProgressTestEnv(t)
	env.addStatement(t, true)
	env.addResearch(t, true)
	env.addExperience(t, true, true)
	env.addMisc(t, true)

	snapshot, _, err := env.service.RecomputeProgress(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if snapshot.PercentageComplete != 80 {
		t.Fatalf("expected 80%% before preferences, got %d%%", snapshot.PercentageComplete)
	}

	svc := newPreferenceService(t, env)
	saved, snapshot, err := svc.Save(context.Background(), env.userID, PreferenceInput{
		PrimarySpecialty: "Dermatology",
		PreferredStates:  []string{"CA"},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !saved.IsComplete {
		t.Fatalf("a saved preference must be complete")
	}
	if snapshot == nil || snapshot.PercentageComplete != 100 {
		t.Fatalf("expected 100%% after saving preferences, got %+v", snapshot)
	}
	if saved.HospitalPreference != "either" || saved.ResidentCountPreference != "either" {
		t.Fatalf("expected either-defaults, got %q / %q", saved.HospitalPreference, saved.ResidentCountPreference)
	}
}

func TestPreferenceSave_Validation(t *testing.T) {
	env := newProgressTestEnv(t)
	svc := newPreferenceService(t, env)
	ctx := context.Background()

	if _, _, err := svc.Save(ctx, env.userID, PreferenceInput{}); err == nil {
		t.Fatalf("expected error for missing primary specialty")
	}
	if _, _, err := svc.Save(ctx, env.userID, PreferenceInput{PrimarySpecialty: "Astrology"}); err == nil {
		t.Fatalf("expected error for unknown specialty")
	}
	if _, _, err := svc.Save(ctx, env.userID, PreferenceInput{PrimarySpecialty: "Dermatology", PreferredStates: []string{"ZZ"}}); err == nil {
		t.Fatalf("expected error for unknown state")
	}
	if _, _, err := svc.Save(ctx, env.userID, PreferenceInput{
		PrimarySpecialty:      "Dermatology",
		ValuedCharacteristics: []string{"a", "b", "c", "d"},
	}); err == nil {
		t.Fatalf("expected error for more than %d valued characteristics", MaxValuedCharacteristics)
	}
	if _, _, err := svc.Save(ctx, env.userID, PreferenceInput{
		PrimarySpecialty:   "Dermatology",
		HospitalPreference: "rural",
	}); err == nil {
		t.Fatalf("expected error for unknown hospital preference")
	}
}
