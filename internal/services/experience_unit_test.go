package services

import (
	"testing"
	"time"

	"github.com/matchwise/matchwise-backend/internal/types"
)

func TestDeriveExperienceComplete(t *testing.T) {
	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		exp  types.Experience
		want bool
	}{
		{
			name: "all fields filled",
			exp:  types.Experience{Organization: "Clinic", Position: "Volunteer", Description: "d", StartDate: &start},
			want: true,
		},
		{
			name: "missing description",
			exp:  types.Experience{Organization: "Clinic", Position: "Volunteer", StartDate: &start},
			want: false,
		},
		{
			name: "missing start date",
			exp:  types.Experience{Organization: "Clinic", Position: "Volunteer", Description: "d"},
			want: false,
		},
		{
			name: "most meaningful without its description",
			exp:  types.Experience{Organization: "Clinic", Position: "Volunteer", Description: "d", StartDate: &start, IsMostMeaningful: true},
			want: false,
		},
		{
			name: "most meaningful with its description",
			exp:  types.Experience{Organization: "Clinic", Position: "Volunteer", Description: "d", StartDate: &start, IsMostMeaningful: true, MeaningfulDescription: "m"},
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveExperienceComplete(&tc.exp); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidateExperienceInput_DateRules(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)

	input := ExperienceInput{Organization: "Lab", Position: "RA", StartDate: &start, EndDate: &end}
	if err := validateExperienceInput(&input); err == nil {
		t.Fatalf("expected error for end date before start date")
	}

	input = ExperienceInput{Organization: "Lab", Position: "RA", StartDate: &start, EndDate: &end, Current: true}
	if err := validateExperienceInput(&input); err != nil {
		t.Fatalf("current role should drop the end date, got %v", err)
	}
	if input.EndDate != nil {
		t.Fatalf("expected end date cleared for current role")
	}
}

func TestValidateExperienceInput_MostMeaningfulNeedsDescription(t *testing.T) {
	input := ExperienceInput{Organization: "Lab", Position: "RA", IsMostMeaningful: true}
	if err := validateExperienceInput(&input); err == nil {
		t.Fatalf("expected error for most meaningful without description")
	}
}
