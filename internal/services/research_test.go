package services

import (
	"encoding/json"
	"testing"

	"github.com/matchwise/matchwise-backend/internal/types"
)

func TestDeriveResearchComplete(t *testing.T) {
	cases := []struct {
		name    string
		product types.ResearchProduct
		want    bool
	}{
		{
			name:    "journal article with journal and authors",
			product: types.ResearchProduct{Title: "t", Type: types.ResearchTypeJournalArticle, Authors: []string{"Lee J"}, Journal: "JAMA"},
			want:    true,
		},
		{
			name:    "journal article missing journal",
			product: types.ResearchProduct{Title: "t", Type: types.ResearchTypeJournalArticle, Authors: []string{"Lee J"}},
			want:    false,
		},
		{
			name:    "poster needs no journal",
			product: types.ResearchProduct{Title: "t", Type: types.ResearchTypePoster, Authors: []string{"Lee J"}},
			want:    true,
		},
		{
			name:    "no authors",
			product: types.ResearchProduct{Title: "t", Type: types.ResearchTypePoster},
			want:    false,
		},
		{
			name:    "in-progress status still counts with full metadata",
			product: types.ResearchProduct{Title: "t", Type: types.ResearchTypeAbstract, Status: types.ResearchStatusInProgress, Authors: []string{"Lee J"}},
			want:    true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveResearchComplete(&tc.product); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMergeCitation_NeverOverwritesUserFields(t *testing.T) {
	product := types.ResearchProduct{
		Title:   "My study",
		Journal: "Hand-entered Journal",
		Authors: []string{"Original A"},
	}
	mergeCitation(&product, &Citation{
		PMID:    "12345",
		Journal: "Fetched Journal",
		Volume:  "12",
		Issue:   "3",
		Pages:   "100-110",
		PubDate: "2024 Jan",
		Authors: []string{"Fetched B"},
	})

	if product.Journal != "Hand-entered Journal" {
		t.Fatalf("journal overwritten: %q", product.Journal)
	}
	if len(product.Authors) != 1 || product.Authors[0] != "Original A" {
		t.Fatalf("authors overwritten: %v", product.Authors)
	}
	if product.PMID != "12345" || product.Volume != "12" || product.Pages != "100-110" {
		t.Fatalf("empty fields not filled: %+v", product)
	}
}

func TestCitationFromSummary(t *testing.T) {
	raw := `{
		"uid": "31452104",
		"title": "Outcomes after surgical repair. ",
		"fulljournalname": "The Journal of Hand Surgery",
		"source": "J Hand Surg Am",
		"volume": "44",
		"issue": "11",
		"pages": "950-958",
		"pubdate": "2019 Nov",
		"authors": [{"name": "Smith AB"}, {"name": ""}, {"name": "Jones CD"}]
	}`
	var doc esummaryDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	citation := citationFromSummary("31452104", doc)

	if citation.Title != "Outcomes after surgical repair." {
		t.Fatalf("title not trimmed: %q", citation.Title)
	}
	if citation.Journal != "The Journal of Hand Surgery" {
		t.Fatalf("expected full journal name, got %q", citation.Journal)
	}
	if len(citation.Authors) != 2 {
		t.Fatalf("blank authors should be dropped, got %v", citation.Authors)
	}
	if citation.PubDate != "2019 Nov" || citation.Pages != "950-958" {
		t.Fatalf("unexpected citation: %+v", citation)
	}
}

func TestCitationFromSummary_FallsBackToSourceJournal(t *testing.T) {
	citation := citationFromSummary("1", esummaryDoc{Title: "t", Source: "J Hand Surg Am"})
	if citation.Journal != "J Hand Surg Am" {
		t.Fatalf("expected source fallback, got %q", citation.Journal)
	}
}
