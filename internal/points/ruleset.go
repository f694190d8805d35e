package points

// Ruleset names the scoring variant the service runs with. The two variants
// differ in exactly two behaviors, both derived from this one flag: whether
// item descriptions starting with "g" earn a bonus, and whether resubmitting
// identical receipt content is rejected as a duplicate.
type Ruleset string

const (
	// RulesetStandard scores with the base eight rules and accepts repeated
	// submissions of identical content (each gets a fresh id).
	RulesetStandard Ruleset = "standard"

	// RulesetExtended adds the "description starts with g" bonus and rejects
	// duplicate submissions by content fingerprint.
	RulesetExtended Ruleset = "extended"
)

// Valid reports whether rs is a known ruleset.
func (rs Ruleset) Valid() bool {
	return rs == RulesetStandard || rs == RulesetExtended
}

// DescriptionBonus reports whether items whose trimmed description starts
// with "g" or "G" earn 10 extra points each.
func (rs Ruleset) DescriptionBonus() bool {
	return rs == RulesetExtended
}

// RejectDuplicates reports whether the store refuses receipts whose content
// fingerprint has been seen before.
func (rs Ruleset) RejectDuplicates() bool {
	return rs == RulesetExtended
}
