package services

import (
	"testing"

	"github.com/matchwise/matchwise-backend/internal/types"
)

func TestScorePrograms_RanksPrimarySpecialtyFirst(t *testing.T) {
	preference := &types.ProgramPreference{
		PrimarySpecialty:        "Dermatology",
		OtherSpecialties:        []string{"Internal Medicine"},
		PreferredStates:         []string{"CA"},
		HospitalPreference:      types.SettingAcademic,
		ResidentCountPreference: types.ResidentCountMore,
	}
	programs := []*types.Program{
		{Name: "IM in CA", Specialty: "Internal Medicine", State: "CA", Setting: types.SettingAcademic, ResidentCountBand: types.ResidentCountMore},
		{Name: "Derm in NY", Specialty: "Dermatology", State: "NY", Setting: types.SettingCommunity, ResidentCountBand: types.ResidentCountFewer},
		{Name: "Derm in CA", Specialty: "Dermatology", State: "CA", Setting: types.SettingAcademic, ResidentCountBand: types.ResidentCountMore},
		{Name: "Peds in CA", Specialty: "Pediatrics", State: "CA", Setting: types.SettingAcademic, ResidentCountBand: types.ResidentCountMore},
	}

	scored := scorePrograms(programs, preference)

	if len(scored) != 3 {
		t.Fatalf("programs outside the preferred specialties should be dropped, got %d results", len(scored))
	}
	if scored[0].Program.Name != "Derm in CA" {
		t.Fatalf("expected full match first, got %q", scored[0].Program.Name)
	}
	// Primary specialty + state + setting + size.
	if scored[0].Score != 8 {
		t.Fatalf("expected score 8, got %d", scored[0].Score)
	}
	if scored[len(scored)-1].Program.Name != "Derm in NY" {
		t.Fatalf("expected weakest match last, got %q", scored[len(scored)-1].Program.Name)
	}
}

func TestScorePrograms_EitherPreferenceMatchesBothSettings(t *testing.T) {
	preference := &types.ProgramPreference{
		PrimarySpecialty:        "Dermatology",
		HospitalPreference:      types.SettingEither,
		ResidentCountPreference: types.ResidentCountEither,
	}
	programs := []*types.Program{
		{Name: "A", Specialty: "Dermatology", Setting: types.SettingAcademic, ResidentCountBand: types.ResidentCountFewer},
		{Name: "B", Specialty: "Dermatology", Setting: types.SettingCommunity, ResidentCountBand: types.ResidentCountMore},
	}

	scored := scorePrograms(programs, preference)
	if len(scored) != 2 {
		t.Fatalf("expected both programs scored, got %d", len(scored))
	}
	if scored[0].Score != scored[1].Score {
		t.Fatalf("either-preference should score both settings equally: %d vs %d", scored[0].Score, scored[1].Score)
	}
	// Equal scores fall back to name order.
	if scored[0].Program.Name != "A" {
		t.Fatalf("expected name tiebreak, got %q first", scored[0].Program.Name)
	}
}

func TestDeriveMiscComplete(t *testing.T) {
	answeredNo := false
	answeredYes := true
	cases := []struct {
		name string
		misc types.MiscellaneousQuestion
		want bool
	}{
		{
			name: "education and answered no",
			misc: types.MiscellaneousQuestion{Undergraduate: []types.EducationEntry{{Institution: "State U"}}, ProfessionalismHasIssues: &answeredNo},
			want: true,
		},
		{
			name: "education and answered yes",
			misc: types.MiscellaneousQuestion{Graduate: []types.EducationEntry{{Institution: "Med School"}}, ProfessionalismHasIssues: &answeredYes},
			want: true,
		},
		{
			name: "education but unanswered",
			misc: types.MiscellaneousQuestion{Undergraduate: []types.EducationEntry{{Institution: "State U"}}},
			want: false,
		},
		{
			name: "answered but no education",
			misc: types.MiscellaneousQuestion{ProfessionalismHasIssues: &answeredNo},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveMiscComplete(&tc.misc); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
