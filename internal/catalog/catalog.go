package catalog

import (
  "fmt"
  "os"
  "strings"
  "gopkg.in/yaml.v3"
  "github.com/matchwise/matchwise-backend/internal/logger"
)

// Catalog holds the residency specialty directory and the US state codes a
// preference may name. A YAML file (SPECIALTY_CATALOG_PATH) overrides the
// built-in defaults; a missing or broken file falls back to them.
type Catalog struct {
  specialties map[string]string
  states      map[string]bool
}

type catalogFile struct {
  Specialties []string `yaml:"specialties"`
  States      []string `yaml:"states"`
}

func Load(log *logger.Logger) *Catalog {
  specialties := defaultSpecialties
  states := defaultStates

  if path := strings.TrimSpace(os.Getenv("SPECIALTY_CATALOG_PATH")); path != "" {
    raw, err := os.ReadFile(path)
    if err != nil {
      if log != nil {
        log.Warn("Could not read specialty catalog, using defaults", "path", path, "error", err)
      }
    } else {
      var file catalogFile
      if err := yaml.Unmarshal(raw, &file); err != nil {
        if log != nil {
          log.Warn("Could not parse specialty catalog, using defaults", "path", path, "error", err)
        }
      } else {
        if len(file.Specialties) > 0 {
          specialties = file.Specialties
        }
        if len(file.States) > 0 {
          states = file.States
        }
      }
    }
  }

  c := &Catalog{
    specialties: make(map[string]string, len(specialties)),
    states:      make(map[string]bool, len(states)),
  }
  for _, s := range specialties {
    trimmed := strings.TrimSpace(s)
    if trimmed == "" {
      continue
    }
    c.specialties[strings.ToLower(trimmed)] = trimmed
  }
  for _, s := range states {
    trimmed := strings.ToUpper(strings.TrimSpace(s))
    if trimmed == "" {
      continue
    }
    c.states[trimmed] = true
  }
  return c
}

// Canonical returns the catalog's spelling for a specialty, matching
// case-insensitively.
func (c *Catalog) Canonical(specialty string) (string, bool) {
  canonical, ok := c.specialties[strings.ToLower(strings.TrimSpace(specialty))]
  return canonical, ok
}

func (c *Catalog) ValidateSpecialty(specialty string) error {
  if _, ok := c.Canonical(specialty); !ok {
    return fmt.Errorf("Unknown specialty: %q", specialty)
  }
  return nil
}

func (c *Catalog) ValidateSpecialties(specialties []string) error {
  for _, s := range specialties {
    if err := c.ValidateSpecialty(s); err != nil {
      return err
    }
  }
  return nil
}

func (c *Catalog) ValidateState(state string) error {
  if !c.states[strings.ToUpper(strings.TrimSpace(state))] {
    return fmt.Errorf("Unknown state code: %q", state)
  }
  return nil
}

func (c *Catalog) ValidateStates(states []string) error {
  for _, s := range states {
    if err := c.ValidateState(s); err != nil {
      return err
    }
  }
  return nil
}

var defaultSpecialties = []string{
  "Anesthesiology",
  "Cardiology",
  "Dermatology",
  "Emergency Medicine",
  "Family Medicine",
  "General Surgery",
  "Internal Medicine",
  "Neurology",
  "Neurosurgery",
  "Obstetrics and Gynecology",
  "Ophthalmology",
  "Orthopaedic Surgery",
  "Otolaryngology",
  "Pathology",
  "Pediatrics",
  "Physical Medicine and Rehabilitation",
  "Plastic Surgery",
  "Psychiatry",
  "Radiation Oncology",
  "Radiology",
  "Urology",
  "Vascular Surgery",
}

var defaultStates = []string{
  "AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
  "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
  "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
  "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
  "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
  "DC", "PR",
}
