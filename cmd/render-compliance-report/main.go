package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/legalguard/regtech/internal/compliance"
	"github.com/legalguard/regtech/internal/reportpdf"
)

func main() {
	inputPath := flag.String("input", "", "Path to a report JSON file produced by contract-analyze")
	markdownPath := flag.String("markdown", "", "Path to a standalone markdown report (alternative to -input)")
	outputPath := flag.String("output", "report.pdf", "Path to write the PDF")
	flag.Parse()

	if *inputPath == "" && *markdownPath == "" {
		log.Fatal("missing required -input or -markdown")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	renderer := reportpdf.NewRenderer()

	var pdf []byte
	var err error
	switch {
	case *inputPath != "":
		in, readErr := os.ReadFile(*inputPath)
		if readErr != nil {
			log.Fatalf("read input: %v", readErr)
		}
		var report compliance.Report
		if err := json.Unmarshal(in, &report); err != nil {
			log.Fatalf("decode report JSON: %v", err)
		}
		pdf, err = renderer.Render(ctx, report)
	default:
		in, readErr := os.ReadFile(*markdownPath)
		if readErr != nil {
			log.Fatalf("read markdown: %v", readErr)
		}
		pdf, err = renderer.RenderMarkdown(ctx, string(in))
	}
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}

	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *outputPath, len(pdf))
}
