package compliance

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

const (
	minLineChars          = 5
	maxSpecialCharRatio   = 0.3
	maxRepeatedCharRatio  = 1.0 / 3.0
	insubstantialWarnSize = MinSubstantialChars
)

// Lines matching any of these are document plumbing, not contract language.
var metadataLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*page\s+\d+(\s+of\s+\d+)?\s*$`),
	regexp.MustCompile(`(?i)^\s*-?\s*\d+\s*-?\s*$`),
	regexp.MustCompile(`(?i)generated\s+by\b`),
	regexp.MustCompile(`(?i)^\s*(document\s+id|file\s*name|last\s+(modified|saved)|printed\s+on|created\s+on)\b`),
	regexp.MustCompile(`(?i)^\s*(copyright|©|all\s+rights\s+reserved)`),
	regexp.MustCompile(`(?i)^\s*(draft\s+(copy|version)|for\s+review\s+only|do\s+not\s+distribute)\b`),
	regexp.MustCompile(`(?i)^\s*this\s+document\s+(was|is)\s+(automatically|electronically)\b`),
	regexp.MustCompile(`(?i)^\s*disclaimer\s*:?\s*$`),
}

// NormalizeText strips markdown and formatting artifacts from raw contract
// text and removes lines that are document metadata rather than contract
// language. Degraded input is tolerated and passed downstream; it is the
// classifier's job to mark insubstantial documents.
func NormalizeText(raw string) string {
	plain := markdownToPlain([]byte(raw))

	var kept []string
	blank := true
	for _, line := range strings.Split(plain, "\n") {
		line = collapseSpaces(line)
		if line == "" {
			// Preserve one blank line as a paragraph boundary.
			if !blank {
				kept = append(kept, "")
				blank = true
			}
			continue
		}
		if !keepLine(line) {
			continue
		}
		kept = append(kept, line)
		blank = false
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(out) < insubstantialWarnSize {
		log.Printf("normalize: text reduced to %d chars, likely not a contract", len(out))
	}
	return out
}

// markdownToPlain parses the input as CommonMark and walks the AST, keeping
// only text content. Headings, paragraphs and list items each end up on
// their own line; HTML blocks and inline HTML are dropped entirely.
func markdownToPlain(src []byte) string {
	root := goldmark.DefaultParser().Parse(gmtext.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TextBlock:
				b.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.ListItem:
			// Contracts number their sections; CommonMark reads those
			// headings as ordered-list items and swallows the ordinal.
			// Re-emit it so the section extractor still sees "1. TITLE".
			if list, ok := t.Parent().(*ast.List); ok && list.IsOrdered() {
				num := list.Start
				if num == 0 {
					num = 1
				}
				for sib := t.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
					num++
				}
				fmt.Fprintf(&b, "%d%c ", num, list.Marker)
			}
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeBlock:
			writeRawLines(&b, t.Lines(), src)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			writeRawLines(&b, t.Lines(), src)
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func writeRawLines(b *strings.Builder, lines *gmtext.Segments, src []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	b.WriteString("\n")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func keepLine(line string) bool {
	if len(line) < minLineChars {
		return false
	}
	for _, p := range metadataLinePatterns {
		if p.MatchString(line) {
			return false
		}
	}
	if specialCharRatio(line) > maxSpecialCharRatio {
		return false
	}
	if repeatedCharRatio(line) > maxRepeatedCharRatio {
		return false
	}
	return true
}

func specialCharRatio(s string) float64 {
	if s == "" {
		return 0
	}
	special := 0
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			special++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(special) / float64(total)
}

// repeatedCharRatio reports the share of the line taken by its most common
// non-space character. Divider lines ("=====", "- - - -") score near 1.
func repeatedCharRatio(s string) float64 {
	counts := map[rune]int{}
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		counts[r]++
		total++
	}
	if total == 0 {
		return 0
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max) / float64(total)
}
