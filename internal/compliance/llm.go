package compliance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const analysisSystemPrompt = "You are a legal compliance analyst reviewing commercial contracts against statutory requirements. Respond with strict JSON only."

type llmFailureClass int

const (
	failureNone llmFailureClass = iota
	failureTimeout
	failureRateLimit
	failureServer
	failureClient
)

type LLMCaller interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return &AnthropicCaller{messages: newAnthropicClient(apiKey)}, nil
}

func (a *AnthropicCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: analysisSystemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// buildAnalysisPrompt asks the model for the same JSON shape the merger
// expects, scoped to the laws that actually apply.
func buildAnalysisPrompt(text string, jur Jurisdiction) string {
	var laws []string
	for _, law := range ApplicableLaws(jur) {
		laws = append(laws, string(law))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the following contract for compliance issues under jurisdiction %s.\n", jur)
	fmt.Fprintf(&sb, "Only cite these laws: %s.\n\n", strings.Join(laws, ", "))
	sb.WriteString("Return JSON with this exact shape:\n")
	sb.WriteString(`{"summary": "...", "flagged_clauses": [{"clause_text": "...", "issue": "...", "severity": "low|medium|high"}], "compliance_issues": [{"law": "...", "missing_requirements": ["..."], "recommendations": ["..."]}]}`)
	sb.WriteString("\n\nQuote clause_text verbatim from the contract. Cite specific statutory sections in each issue.\n\nContract:\n")
	sb.WriteString(text)
	return sb.String()
}

// callModel performs the one network operation in the pipeline, retrying
// transient transport failures. Content-level garbage is not retried here;
// the merger tolerates it.
func callModel(ctx context.Context, caller LLMCaller, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		raw, err := caller.GenerateJSON(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		class := classifyTransportError(err)
		if class != failureTimeout && class != failureRateLimit && class != failureServer {
			break
		}
		if attempt < 3 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoffDelay(attempt)):
			}
		}
	}
	return "", fmt.Errorf("model call failed: %w", lastErr)
}

func classifyTransportError(err error) llmFailureClass {
	msg := strings.ToLower(err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, " 5") || strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, " 4") || strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}
