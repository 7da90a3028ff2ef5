package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/legalguard/regtech/internal/compliance"
)

func main() {
	inputPath := flag.String("input", "", "Path to the contract text file (use - for stdin)")
	jurisdiction := flag.String("jurisdiction", "", "Jurisdiction code (MY, SG, EU, US); defaults to MY")
	format := flag.String("format", "json", "Output format: json or markdown")
	outputPath := flag.String("output", "", "Path to write the report (defaults to stdout)")
	useModel := flag.Bool("model", false, "Enrich rule findings with model analysis (requires ANTHROPIC_API_KEY)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	text, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatal("input contract is empty")
	}

	var caller compliance.LLMCaller
	if *useModel {
		ac, err := compliance.NewAnthropicCallerFromEnv()
		if err != nil {
			log.Fatalf("anthropic caller: %v", err)
		}
		caller = ac
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	analyzer := compliance.NewAnalyzer(caller)
	report := analyzer.Analyze(ctx, compliance.AnalyzeRequest{
		Text:         text,
		Jurisdiction: *jurisdiction,
	})

	out, err := formatReport(report, *format)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeOutput(*outputPath, out); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func formatReport(report compliance.Report, format string) (string, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}
		return string(b) + "\n", nil
	case "markdown":
		return compliance.BuildMarkdownReport(report), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or markdown)", format)
	}
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
