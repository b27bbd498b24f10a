// Package policy defines the coverage rubrics the decision step scores
// against. A rubric names the required sections, their display labels, and
// the score penalty applied when a section is missing or only partially
// evidenced. Rubrics are data, not code: they ship as embedded YAML so a
// deployment can diff and review them like any other config.
package policy

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PolicyStartup is the default rubric for a startup raise.
	PolicyStartup = "startup"
	// PolicyRealEstate substitutes offering-memo section semantics.
	PolicyRealEstate = "real_estate_underwriting"
)

// Section keys shared by every rubric. The real-estate rubric relabels
// several of them but keeps the keys stable so diffs across policies stay
// meaningful.
const (
	SectionProduct       = "product"
	SectionMarket        = "market"
	SectionRaiseTerms    = "raise_terms"
	SectionBusinessModel = "business_model"
	SectionTraction      = "traction"
	SectionFinancials    = "financials"
	SectionTeam          = "team"
	SectionGTM           = "go_to_market"
	SectionRisks         = "risks"
)

// Section is one required rubric entry.
type Section struct {
	Key            string `yaml:"key"`
	Label          string `yaml:"label"`
	MissingPenalty int    `yaml:"missing_penalty"`
	PartialPenalty int    `yaml:"partial_penalty"`
	Critical       bool   `yaml:"critical"`
	NextRequest    string `yaml:"next_request"`
}

// Rubric is a complete coverage policy.
type Rubric struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Sections []Section `yaml:"sections"`
}

//go:embed rubrics.yaml
var rubricsYAML []byte

type rubricFile struct {
	Rubrics []Rubric `yaml:"rubrics"`
}

var rubrics = mustLoad()

func mustLoad() map[string]Rubric {
	var f rubricFile
	if err := yaml.Unmarshal(rubricsYAML, &f); err != nil {
		panic(fmt.Sprintf("policy: embedded rubrics are invalid: %v", err))
	}
	out := make(map[string]Rubric, len(f.Rubrics))
	for _, r := range f.Rubrics {
		out[r.ID] = r
	}
	if _, ok := out[PolicyStartup]; !ok {
		panic("policy: embedded rubrics missing startup default")
	}
	return out
}

// ForID returns the rubric for a policy id. Unknown or empty ids fall back
// to the startup default; callers never get an error from policy selection.
func ForID(id string) Rubric {
	if r, ok := rubrics[strings.TrimSpace(id)]; ok {
		return r
	}
	return rubrics[PolicyStartup]
}

// Known reports whether id names a shipped rubric.
func Known(id string) bool {
	_, ok := rubrics[strings.TrimSpace(id)]
	return ok
}

// IDs lists the shipped policy ids in stable order.
func IDs() []string {
	out := make([]string, 0, len(rubrics))
	for _, id := range []string{PolicyStartup, PolicyRealEstate} {
		if _, ok := rubrics[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
