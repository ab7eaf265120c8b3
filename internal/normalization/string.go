package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInputString keeps the caller's casing. Used for names, titles and
// free-text fields where lowercasing would mangle the stored value.
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}

func TrimInputStrings(inputs []string) []string {
  out := make([]string, 0, len(inputs))
  for _, s := range inputs {
    trimmed := strings.TrimSpace(s)
    if trimmed == "" {
      continue
    }
    out = append(out, trimmed)
  }
  return out
}
