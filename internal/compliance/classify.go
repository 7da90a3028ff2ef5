package compliance

import (
	"regexp"
	"strings"
)

const (
	weightStrong   = 3
	weightModerate = 2
	weightWeak     = 1

	// minClassifyScore is the weighted-hit threshold below which a document
	// stays "general".
	minClassifyScore = 3
)

type keywordFamily struct {
	Strong   []string
	Moderate []string
	Weak     []string
}

var typeKeywords = map[ContractType]keywordFamily{
	TypeEmployment: {
		Strong:   []string{"employment contract", "contract of employment", "employee shall", "employer shall", "probationary period"},
		Moderate: []string{"salary", "wages", "annual leave", "working hours", "overtime", "epf", "socso", "job title", "notice of termination"},
		Weak:     []string{"employee", "employer", "workplace", "duties"},
	},
	TypeService: {
		Strong:   []string{"service agreement", "scope of services", "statement of work", "service provider shall"},
		Moderate: []string{"deliverables", "service level", "consultant", "contractor", "milestones"},
		Weak:     []string{"services", "client", "fees"},
	},
	TypeNDA: {
		Strong:   []string{"non-disclosure agreement", "confidentiality agreement", "confidential information means"},
		Moderate: []string{"confidential information", "proprietary information", "trade secret", "disclosing party", "receiving party"},
		Weak:     []string{"confidential", "disclose", "non-disclosure"},
	},
	TypeRental: {
		Strong:   []string{"tenancy agreement", "lease agreement", "landlord shall", "tenant shall"},
		Moderate: []string{"rent", "rental", "premises", "security deposit", "landlord", "tenant"},
		Weak:     []string{"lease", "occupancy", "utilities"},
	},
	TypeSales: {
		Strong:   []string{"sale and purchase agreement", "purchase agreement", "bill of sale"},
		Moderate: []string{"purchase price", "buyer", "seller", "delivery of goods", "title to the goods"},
		Weak:     []string{"goods", "purchase", "invoice"},
	},
	TypePartnership: {
		Strong:   []string{"partnership agreement", "joint venture agreement", "profit sharing"},
		Moderate: []string{"partners", "capital contribution", "partnership", "joint venture"},
		Weak:     []string{"partner", "equity", "dissolution"},
	},
}

var contentFlagPhrases = map[string][]string{
	"data_processing": {"personal data", "personal information", "data processing", "data subject", "data controller", "data processor", "process personal"},
	"termination":     {"terminate", "termination", "notice period", "end of this agreement"},
	"payment":         {"payment", "fee", "salary", "wages", "invoice", "remuneration", "compensation"},
	"liability":       {"liability", "liable", "indemnify", "indemnification", "limitation of liability", "hold harmless"},
	"ip":              {"intellectual property", "copyright", "patent", "trademark", "work product", "moral rights"},
}

var jurisdictionVocab = map[Jurisdiction][]string{
	JurisdictionMY: {"malaysia", "malaysian", "kuala lumpur", "employment act 1955", "pdpa 2010", "ringgit", "rm ", "epf", "socso"},
	JurisdictionSG: {"singapore", "singaporean", "pdpa 2012", "singapore dollar", "sgd", "monetary authority of singapore"},
	JurisdictionEU: {"european union", "gdpr", "general data protection regulation", "data protection officer", "member state", "eur ", "€"},
	JurisdictionUS: {"united states", "california", "ccpa", "delaware", "federal law", "usd", "$"},
}

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// Classify scores normalized text against weighted keyword families and
// derives the document metadata consumed by the violation detector and gap
// analyzer. Jurisdiction hints are advisory only; the caller-supplied
// jurisdiction always wins for rule selection.
func Classify(text string) ContractMetadata {
	lower := strings.ToLower(text)

	bestType := TypeGeneral
	bestScore := 0
	for _, ct := range []ContractType{TypeEmployment, TypeService, TypeNDA, TypeRental, TypeSales, TypePartnership} {
		score := scoreFamily(lower, typeKeywords[ct])
		if score > bestScore {
			bestType = ct
			bestScore = score
		}
	}
	if bestScore < minClassifyScore {
		bestType = TypeGeneral
	}

	words := len(strings.Fields(text))
	sentences := countSentences(text)

	return ContractMetadata{
		ContractType:      bestType,
		Confidence:        bestScore,
		Flags:             detectContentFlags(lower),
		WordCount:         words,
		SentenceCount:     sentences,
		IsSubstantial:     len(text) >= MinSubstantialChars && words >= 20,
		JurisdictionHints: detectJurisdictionHints(lower),
	}
}

func scoreFamily(lower string, family keywordFamily) int {
	score := 0
	for _, kw := range family.Strong {
		score += strings.Count(lower, kw) * weightStrong
	}
	for _, kw := range family.Moderate {
		score += strings.Count(lower, kw) * weightModerate
	}
	for _, kw := range family.Weak {
		score += strings.Count(lower, kw) * weightWeak
	}
	return score
}

func detectContentFlags(lower string) ContentFlags {
	return ContentFlags{
		HasDataProcessing:    containsAny(lower, contentFlagPhrases["data_processing"]),
		HasTerminationClause: containsAny(lower, contentFlagPhrases["termination"]),
		HasPaymentTerms:      containsAny(lower, contentFlagPhrases["payment"]),
		HasLiabilityClause:   containsAny(lower, contentFlagPhrases["liability"]),
		HasIPClause:          containsAny(lower, contentFlagPhrases["ip"]),
	}
}

func detectJurisdictionHints(lower string) []Jurisdiction {
	var hints []Jurisdiction
	for _, j := range []Jurisdiction{JurisdictionMY, JurisdictionSG, JurisdictionEU, JurisdictionUS} {
		if containsAny(lower, jurisdictionVocab[j]) {
			hints = append(hints, j)
		}
	}
	return hints
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func countSentences(text string) int {
	n := 0
	for _, part := range sentenceSplitPattern.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
