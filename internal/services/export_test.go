package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/matchwise/matchwise-backend/internal/types"
)

func TestRenderPacket_ProducesPDF(t *testing.T) {
	answered := false
	start := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)
	user := &types.User{FirstName: "Alex", LastName: "Rivera", Email: "alex@example.com"}
	snapshot := &ProgressSnapshot{TotalSections: 5, CompletedSections: 5, PercentageComplete: 100}
	sections := []SectionStatus{
		{Section: SectionPersonalStatement, Complete: true, Status: StatusCompleted},
		{Section: SectionResearchProducts, Complete: true, Status: StatusCompleted},
		{Section: SectionExperiences, Complete: true, Status: StatusCompleted},
		{Section: SectionMiscellaneous, Complete: true, Status: StatusCompleted},
		{Section: SectionProgramPreference, Complete: true, Status: StatusCompleted},
	}
	statement := &types.PersonalStatement{
		SelectedThesisStatement: "Dermatology lets me pair procedure with continuity.",
		FinalStatement:          "My path to dermatology started in a free clinic.",
		WordCount:               9,
	}
	experiences := []*types.Experience{
		{Organization: "County Hospital", Position: "Volunteer", StartDate: &start, Current: true, Description: "Triage support.", IsMostMeaningful: true, MeaningfulDescription: "Shaped my view of access to care."},
	}
	products := []*types.ResearchProduct{
		{Title: "Wound healing outcomes", Type: types.ResearchTypeJournalArticle, Status: types.ResearchStatusPublished, Authors: []string{"Rivera A", "Smith B"}, Journal: "JAAD", Volume: "88", Issue: "2", Pages: "101-109", PMID: "12345", PubDate: "2023 Feb"},
	}
	misc := &types.MiscellaneousQuestion{
		Undergraduate:            []types.EducationEntry{{Institution: "State University", Degree: "BS", FieldOfStudy: "Biology", GraduationYear: 2020}},
		ProfessionalismHasIssues: &answered,
		HonorsAwards:             []string{"Dean's List"},
	}
	preference := &types.ProgramPreference{
		PrimarySpecialty:        "Dermatology",
		PreferredStates:         []string{"CA", "OR"},
		HospitalPreference:      types.SettingAcademic,
		ResidentCountPreference: types.ResidentCountEither,
	}

	pdfBytes, err := renderPacket(user, snapshot, sections, statement, experiences, products, misc, preference)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", pdfBytes[:8])
	}
}

func TestRenderPacket_ToleratesMissingSections(t *testing.T) {
	user := &types.User{FirstName: "Alex", LastName: "Rivera", Email: "alex@example.com"}
	snapshot := &ProgressSnapshot{TotalSections: 5, CompletedSections: 4, PercentageComplete: 80}

	pdfBytes, err := renderPacket(user, snapshot, nil, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatalf("expected non-empty output")
	}
}

func TestFormatCitationLine(t *testing.T) {
	product := &types.ResearchProduct{
		Title:   "Wound healing outcomes",
		Status:  types.ResearchStatusSubmitted,
		Authors: []string{"Rivera A"},
		Journal: "JAAD",
		Volume:  "88",
		Issue:   "2",
		Pages:   "101-109",
		PMID:    "12345",
	}
	line := formatCitationLine(product)
	want := "Rivera A. Wound healing outcomes. JAAD 88(2):101-109 [submitted] PMID: 12345"
	if line != want {
		t.Fatalf("unexpected citation line:\n got %q\nwant %q", line, want)
	}
}

func TestNotReadyError_CarriesPercentage(t *testing.T) {
	err := &NotReadyError{PercentageComplete: 60}
	if err.PercentageComplete != 60 {
		t.Fatalf("unexpected percentage %d", err.PercentageComplete)
	}
	if err.Error() == "" {
		t.Fatalf("expected message")
	}
}
