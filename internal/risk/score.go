package risk

import (
	"regexp"
	"strings"
)

const (
	// NumericChangeRisk is added when the numeric token sets of a pair differ.
	NumericChangeRisk = 5
	// KeywordRisk is added for every watched keyword that appears on one side only.
	KeywordRisk = 3
	// RemovedRisk is the fixed risk of a master sentence with no counterpart.
	RemovedRisk = 4
	// AddedRisk is the fixed risk of a test sentence with no counterpart.
	AddedRisk = 4
	// LowConfidencePenalty is added to pairs whose alignment score is not high.
	LowConfidencePenalty = 2
)

const (
	// ReasonNumericChanged is reported when numbers, amounts or rates differ.
	ReasonNumericChanged = "financial/numeric value changed"
	// ReasonSentenceRemoved is reported for an unmatched master sentence.
	ReasonSentenceRemoved = "sentence removed"
	// ReasonSentenceAdded is reported for an unmatched test sentence.
	ReasonSentenceAdded = "new sentence added"
)

// Keywords lists the clause terms whose presence is tracked, in the order
// their reasons are emitted.
var Keywords = []string{
	"liability",
	"termination",
	"penalty",
	"confidential",
	"payment",
	"insurance",
}

// numberPattern matches an optional dollar sign, decimal digits of any script
// with optional thousands separators, an optional decimal part and an
// optional percent sign. Superscripts and other non-decimal numerals are not
// digits here.
var numberPattern = regexp.MustCompile(`\$?\p{Nd}+(?:,\p{Nd}{3})*(?:\.\p{Nd}+)?%?`)

// Assessment is the risk and the reasons produced for one change.
type Assessment struct {
	Risk    int
	Reasons []string
}

// ExtractNumbers returns every numeric token of s in order of appearance.
func ExtractNumbers(s string) []string {
	return numberPattern.FindAllString(s, -1)
}

// ClauseRemovedReason is the reason text for a keyword that disappeared.
func ClauseRemovedReason(keyword string) string {
	return "clause removed: " + keyword
}

// ClauseAddedReason is the reason text for a keyword that appeared.
func ClauseAddedReason(keyword string) string {
	return "clause added: " + keyword
}

// Score runs every rule over a matched pair of sentences.
// A pair that triggers nothing yields zero risk and no reasons.
func Score(master, test string) Assessment {
	var a Assessment

	if !sameSet(ExtractNumbers(master), ExtractNumbers(test)) {
		a.Risk += NumericChangeRisk
		a.Reasons = append(a.Reasons, ReasonNumericChanged)
	}

	for _, k := range Keywords {
		inMaster := strings.Contains(master, k)
		inTest := strings.Contains(test, k)
		switch {
		case inMaster && !inTest:
			a.Risk += KeywordRisk
			a.Reasons = append(a.Reasons, ClauseRemovedReason(k))
		case !inMaster && inTest:
			a.Risk += KeywordRisk
			a.Reasons = append(a.Reasons, ClauseAddedReason(k))
		}
	}
	return a
}

// Removed returns the fixed assessment of a master sentence without partner.
func Removed() Assessment {
	return Assessment{Risk: RemovedRisk, Reasons: []string{ReasonSentenceRemoved}}
}

// Added returns the fixed assessment of a test sentence without partner.
func Added() Assessment {
	return Assessment{Risk: AddedRisk, Reasons: []string{ReasonSentenceAdded}}
}

// sameSet compares a and b as unordered sets, ignoring duplicates.
func sameSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := setA[v]; !ok {
			return false
		}
		setB[v] = struct{}{}
	}
	return len(setA) == len(setB)
}
