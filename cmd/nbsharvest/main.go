package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/fs"
	"github.com/nbsatlas/nbsharvest/gemini"
	"github.com/nbsatlas/nbsharvest/goquery"
	nbsopenai "github.com/nbsatlas/nbsharvest/openai"
	"github.com/nbsatlas/nbsharvest/pipeline"
	"github.com/nbsatlas/nbsharvest/readability"
	nbsslog "github.com/nbsatlas/nbsharvest/slog"
	"github.com/nbsatlas/nbsharvest/sqlite"
	"github.com/nbsatlas/nbsharvest/trafilatura"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the record store.
	DB *sqlite.DB

	// Record store for end-to-end testing.
	Records nbsharvest.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nbsharvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nbsharvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NBSHARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Records = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Records = m.Records
	deps.Dataset = fs.NewWriter()

	// Wire the pipeline only for harvest; it needs an LLM credential the
	// other commands don't.
	if cmd == "harvest" {
		processor, err := m.buildProcessor(ctx, cli.Harvest, stderr)
		if err != nil {
			return err
		}
		deps.Processor = processor
	}

	return kongCtx.Run(deps)
}

// buildProcessor wires the extraction pipeline from harvest flags.
func (m *Main) buildProcessor(ctx context.Context, c HarvestCmd, stderr io.Writer) (*pipeline.Processor, error) {
	format, err := nbsharvest.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	fields, err := newFieldExtractor(ctx, c, stderr)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if c.Verbose {
		fields = nbsslog.NewLoggingExtractor(fields, logger)
	}

	var text nbsharvest.TextExtractor
	switch c.Extractor {
	case "readability":
		text = readability.NewExtractor()
	case "trafilatura":
		text = trafilatura.NewExtractor()
	default:
		text = goquery.NewTextExtractor()
	}

	var limiter *rate.Limiter
	if c.RPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RPM/60), 1)
	}

	return &pipeline.Processor{
		Text:       text,
		Fields:     fields,
		Records:    m.Records,
		Dataset:    fs.NewWriter(),
		OutputPath: c.Output,
		Format:     format,
		Limiter:    limiter,
		MinTextLen: c.MinText,
		Logger:     logger,
	}, nil
}

// newFieldExtractor creates the LLM client for the selected provider.
// Credentials come from the environment and are passed into constructors,
// never held as process-wide state.
func newFieldExtractor(ctx context.Context, c HarvestCmd, stderr io.Writer) (nbsharvest.FieldExtractor, error) {
	switch c.Provider {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, nbsharvest.Errorf(nbsharvest.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewExtractor(client, c.Model), nil

	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set.")
			return nil, nbsharvest.Errorf(nbsharvest.EINVALID, "OPENAI_API_KEY not set")
		}
		return nbsopenai.NewExtractor(apiKey, c.Model)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("NBSHARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "nbsharvest.db"
	}
	dir := filepath.Join(home, ".nbsharvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "nbsharvest.db")
}
