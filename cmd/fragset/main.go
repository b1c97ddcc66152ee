package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/classify"
	"github.com/mzalewski/fragset/crawl"
	"github.com/mzalewski/fragset/fs"
	"github.com/mzalewski/fragset/gemini"
	"github.com/mzalewski/fragset/goquery"
	fraghttp "github.com/mzalewski/fragset/http"
	fragslog "github.com/mzalewski/fragset/slog"
	"github.com/mzalewski/fragset/sqlite"
	"github.com/mzalewski/fragset/trafilatura"
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
	// Index database path. Set before calling Run().
	DBPath string

	// SQLite database backing the fragment index.
	DB *sqlite.DB
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("fragset"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'fragset --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx)

	// Open the fragment index database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FRAGSET_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Index = sqlite.NewFragmentIndex(m.DB)
	deps.Sitemaps = fraghttp.NewSitemapService(nil)
	deps.Sampler = fraghttp.NewIndexSampler(nil)

	var fetcher fragset.Fetcher = fraghttp.NewFetcher()

	registry := fragset.NewRegistry()
	texts := goquery.NewTextExtractor()
	var classifier fragset.Classifier = classify.NewClassifier(registry, texts)

	if cli.Debug {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = fragslog.NewLoggingFetcher(fetcher, logger)
		deps.Sitemaps = fragslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		classifier = fragslog.NewLoggingClassifier(classifier, logger)
	}

	// Wire command-specific dependencies based on command
	switch cmd {
	case "collect":
		deps.Collector = &crawl.Collector{
			Sitemaps:    deps.Sitemaps,
			Fetcher:     fetcher,
			Extractor:   goquery.NewFragmentExtractor(),
			Links:       goquery.NewLinkExtractor(),
			Classifier:  classifier,
			Store:       fs.NewStore(cli.Collect.Seeds, registry),
			Index:       deps.Index,
			RateLimiter: crawl.NewDomainLimiter(cli.Collect.Rate),
		}

	case "sample":
		deps.Pages = &crawl.Sampler{
			Fetcher:     fetcher,
			Concurrency: cli.Sample.Concurrency,
		}

	case "filter":
		tokens, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Analyzer = goquery.NewAnalyzer()
		deps.MainText = trafilatura.NewExtractor()
		deps.Tokens = tokens

	case "reclassify":
		deps.NewReclassifier = func(seedsDir string) fragset.NegativeReclassifier {
			return fs.NewReclassifier(seedsDir, classifier)
		}

	case "augment":
		deps.Augmenter = goquery.NewAugmenter(cli.Augment.Seed)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting during the filter stage.
const tokenizerModel = "gemini-2.5-flash"

func commandName(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func defaultDBPath() string {
	if path := os.Getenv("FRAGSET_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "fragset.db"
	}
	dir := filepath.Join(home, ".fragset")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "fragset.db")
}
