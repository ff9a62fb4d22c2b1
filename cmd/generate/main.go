// Command generate runs the flashcard pipeline once over a file or stdin and
// prints the result as JSON.
//
//	generate [-config path] [-subject Science] [-file notes.pdf]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"flashgen/internal/adapter/extract"
	"flashgen/internal/app"
	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/dto"
	"flashgen/internal/logger"
	"flashgen/internal/service"
	"flashgen/internal/validation"

	"go.uber.org/zap"
)

type options struct {
	configPath string
	subject    string
	file       string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to config file")
	fs.StringVar(&opts.subject, "subject", "", "subject hint: General, Science, History, Math or Literature")
	fs.StringVar(&opts.file, "file", "", "input file (.pdf or .txt); reads stdin when empty")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Get().Error("Failed to build pipeline", zap.Error(err))
		os.Exit(1)
	}
	code := run(ctx, opts, pipeline.Service, os.Stdin, os.Stdout, os.Stderr)
	_ = pipeline.Close()
	_ = logger.Sync()
	os.Exit(code)
}

// run executes one generation and returns the process exit code.
func run(ctx context.Context, opts options, svc service.FlashcardService, stdin io.Reader, stdout, stderr io.Writer) int {
	if errs := validation.NewValidator().ValidateSubject("subject", opts.subject); len(errs) > 0 {
		fmt.Fprintf(stderr, "error [%s]: %v\n", domain.CodeValidation, errs)
		return 1
	}
	subject, err := domain.ParseSubject(opts.subject)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	result, err := generate(ctx, opts, svc, subject, stdin)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	out, err := json.MarshalIndent(dto.NewFlashcardResponse(result), "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "error: encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))

	if result.Warning != nil {
		fmt.Fprintf(stderr, "warning: %s\n", result.Warning.Message)
	}
	return 0
}

func generate(ctx context.Context, opts options, svc service.FlashcardService, subject domain.Subject, stdin io.Reader) (*domain.GenerationResult, error) {
	if opts.file == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return svc.Run(ctx, string(data), subject)
	}

	docType, err := extract.DetectType("", opts.file)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.file, err)
	}
	return svc.RunDocument(ctx, domain.Document{Name: filepath.Base(opts.file), Type: docType, Data: data}, subject)
}

func reportError(w io.Writer, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		fmt.Fprintf(w, "error [%s]: %s\n", domainErr.Code, domainErr.Message)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
