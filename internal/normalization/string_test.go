package normalization

import (
	"reflect"
	"testing"
)

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  Alex@Example.COM  "); got != "alex@example.com" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestTrimInputString_KeepsCasing(t *testing.T) {
	if got := TrimInputString("  County Hospital "); got != "County Hospital" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestTrimInputStrings_DropsEmpties(t *testing.T) {
	got := TrimInputStrings([]string{" a ", "", "  ", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}
