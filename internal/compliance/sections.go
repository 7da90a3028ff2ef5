package compliance

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	minSectionChars        = 50
	minSectionWords        = 15
	minContractIndicators  = 2
	maxSectionSpecialRatio = 0.4
	maxSectionUpperRatio   = 0.7
)

// sectionHeaderPatterns are tried in priority order. The first pattern that
// yields at least two genuine sections wins.
var sectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*(\d{1,2})[.)]\s+([^\n]{3,100})$`),
	regexp.MustCompile(`(?m)^\s*([A-Z])[.)]\s+([^\n]{3,100})$`),
	regexp.MustCompile(`(?m)^\s*((?:WHEREAS|NOW,?\s+THEREFORE|IN\s+WITNESS\s+WHEREOF|ARTICLE\s+[IVXL\d]+|SECTION\s+\d+|CLAUSE\s+\d+))\b[:.]?\s*([^\n]{0,100})$`),
	regexp.MustCompile(`(?m)^\s*([A-Z][A-Z &/\-]{3,60})\s*$`),
}

var nonContractTitleWords = []string{
	"summary", "disclaimer", "header", "footer", "draft", "table of contents",
	"appendix", "revision history", "about this document", "instructions",
}

var contractIndicators = []string{
	"party", "parties", "shall", "agreement", "whereas", "obligation",
	"hereby", "herein", "covenant", "consideration", "warrant", "liable",
	"liability", "terminate", "termination", "pursuant",
}

// ExtractSections splits normalized text into candidate contract sections and
// keeps only those that read like binding clauses. The filtering is
// deliberately asymmetric: missing a real clause is acceptable, analyzing a
// document header as if it were a clause is not.
func ExtractSections(text string) []ContractSection {
	for _, pattern := range sectionHeaderPatterns {
		sections := splitByHeaders(text, pattern)
		if len(sections) >= 2 {
			return capSections(sections)
		}
	}
	return capSections(splitByParagraphs(text))
}

func splitByHeaders(text string, pattern *regexp.Regexp) []ContractSection {
	locs := pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	var out []ContractSection
	for i, loc := range locs {
		title := collapseSpaces(text[loc[0]:loc[1]])
		start := loc[1]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(text[start:end])
		if !isGenuineSection(title, content) {
			continue
		}
		out = append(out, ContractSection{
			ID:        fmt.Sprintf("section_%d", len(out)+1),
			Title:     title,
			Content:   content,
			WordCount: len(strings.Fields(content)),
		})
	}
	return out
}

func splitByParagraphs(text string) []ContractSection {
	var out []ContractSection
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		title := paragraphTitle(para)
		if !isGenuineSection(title, para) {
			continue
		}
		out = append(out, ContractSection{
			ID:        fmt.Sprintf("paragraph_%d", len(out)+1),
			Title:     title,
			Content:   para,
			WordCount: len(strings.Fields(para)),
		})
	}
	return out
}

func paragraphTitle(para string) string {
	words := strings.Fields(para)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

// capSections keeps the MaxSections largest sections by word count while
// preserving document order.
func capSections(sections []ContractSection) []ContractSection {
	if len(sections) <= MaxSections {
		return sections
	}
	ranked := make([]ContractSection, len(sections))
	copy(ranked, sections)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WordCount > ranked[j].WordCount
	})
	keep := map[string]bool{}
	for _, s := range ranked[:MaxSections] {
		keep[s.ID] = true
	}
	var out []ContractSection
	for _, s := range sections {
		if keep[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

func isGenuineSection(title, content string) bool {
	titleLower := strings.ToLower(title)
	for _, w := range nonContractTitleWords {
		if strings.Contains(titleLower, w) {
			return false
		}
	}
	if len(content) < minSectionChars {
		return false
	}
	if specialCharRatio(content) > maxSectionSpecialRatio {
		return false
	}
	if uppercaseRatio(content) > maxSectionUpperRatio {
		return false
	}
	if len(strings.Fields(content)) < minSectionWords {
		return false
	}
	if !strings.ContainsAny(content, ".!?") {
		return false
	}
	return countIndicators(content) >= minContractIndicators
}

func countIndicators(content string) int {
	lower := strings.ToLower(content)
	n := 0
	for _, term := range contractIndicators {
		n += strings.Count(lower, term)
	}
	return n
}

func uppercaseRatio(s string) float64 {
	upper := 0
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
