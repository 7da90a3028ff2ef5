package compliance

import (
	"context"
	"log"
)

// Report bundles everything one analysis produces. The AnalysisResult is the
// externally visible artifact; metadata, sections, and risk ride along for
// callers that want them.
type Report struct {
	Result   AnalysisResult    `json:"result"`
	Metadata ContractMetadata  `json:"metadata"`
	Sections []ContractSection `json:"sections,omitempty"`
	Risk     RiskScore         `json:"risk"`
}

// Analyzer runs the full contract analysis pipeline. It is stateless between
// calls; a nil caller selects the purely deterministic path.
type Analyzer struct {
	caller LLMCaller
}

func NewAnalyzer(caller LLMCaller) *Analyzer {
	return &Analyzer{caller: caller}
}

// Analyze never returns an error. Malformed model output, insubstantial
// input, and zero findings all degrade to a well-formed Report.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) Report {
	jur := NormalizeJurisdiction(req.Jurisdiction)

	raw := req.Text
	if len(raw) > MaxContractChars {
		log.Printf("analyze: input truncated from %d to %d chars", len(raw), MaxContractChars)
		raw = raw[:MaxContractChars]
	}

	text := NormalizeText(raw)
	meta := Classify(text)

	if !meta.IsSubstantial {
		result := AnalysisResult{
			Summary:      BuildSummary(meta, nil, nil, jur),
			Jurisdiction: jur,
		}
		return Report{Result: result, Metadata: meta, Risk: ScoreRisk(result)}
	}

	sections := ExtractSections(text)
	flags := DetectViolations(text, meta, jur)
	issues := AnalyzeGaps(text, meta, jur)

	ruleResult := AnalysisResult{
		Summary:          BuildSummary(meta, flags, issues, jur),
		FlaggedClauses:   flags,
		ComplianceIssues: issues,
		Jurisdiction:     jur,
	}

	result := ruleResult
	if a.caller != nil {
		modelRaw, err := callModel(ctx, a.caller, buildAnalysisPrompt(text, jur))
		if err != nil {
			log.Printf("analyze: model unavailable, deterministic findings only: %v", err)
		} else {
			result = MergeWithModelOutput(modelRaw, ruleResult)
		}
	}
	result = dropForeignLaws(result)

	return Report{
		Result:   result,
		Metadata: meta,
		Sections: sections,
		Risk:     ScoreRisk(result),
	}
}

// dropForeignLaws is the last guard against cross-jurisdiction leakage. The
// detector and gap analyzer cannot produce foreign laws by construction, so
// anything filtered here came from the model.
func dropForeignLaws(result AnalysisResult) AnalysisResult {
	kept := result.ComplianceIssues[:0]
	for _, ci := range result.ComplianceIssues {
		if !LawApplies(ci.Law, result.Jurisdiction) {
			log.Printf("analyze: dropping %s issue, law not applicable in %s", ci.Law, result.Jurisdiction)
			continue
		}
		kept = append(kept, ci)
	}
	result.ComplianceIssues = kept
	return result
}
