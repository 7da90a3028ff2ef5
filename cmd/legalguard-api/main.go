package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/legalguard/regtech/internal/compliance"
	"github.com/legalguard/regtech/internal/httpapi"
	"github.com/legalguard/regtech/internal/regstore"
)

func main() {
	dbFlag := flag.String("db", "", "path to the regulation SQLite database (overrides DB_PATH env var)")
	addrFlag := flag.String("addr", "", "listen address (overrides PORT env var)")
	flag.Parse()

	addr := *addrFlag
	if addr == "" {
		addr = ":8080"
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
	}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "./data/regulations.db"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing := setupTracing(ctx)
	defer shutdownTracing()

	regs, err := regstore.New(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize regulation store (%s): %v", dbPath, err)
	}
	defer regs.Close()
	log.Printf("regulation store at %s (%d laws loaded)", dbPath, len(regs.Snapshot().All()))

	var caller compliance.LLMCaller
	if strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")) != "" {
		ac, err := compliance.NewAnthropicCallerFromEnv()
		if err != nil {
			log.Fatalf("anthropic caller: %v", err)
		}
		caller = ac
		log.Printf("model-backed analysis enabled")
	} else {
		log.Printf("ANTHROPIC_API_KEY not set; running rule-based analysis only")
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewServer(compliance.NewAnalyzer(caller), regs),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("legalguard-api listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// setupTracing installs an OTLP trace exporter when an endpoint is
// configured; otherwise spans stay on the default no-op provider.
func setupTracing(ctx context.Context) func() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func() {}
	}
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		log.Printf("otlp exporter disabled: %v", err)
		return func() {}
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "legalguard-api"),
		)),
	)
	otel.SetTracerProvider(tp)
	return func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		_ = tp.Shutdown(flushCtx)
	}
}
