package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/goquery"
	"github.com/fwojciec/mailpress/htmltomarkdown"
	mailhttp "github.com/fwojciec/mailpress/http"
	"github.com/fwojciec/mailpress/mailchimp"
	"github.com/fwojciec/mailpress/publish"
	"github.com/fwojciec/mailpress/sqlite"
	"github.com/fwojciec/mailpress/wordpress"
	mailzerolog "github.com/fwojciec/mailpress/zerolog"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config holds environment configuration for the external services.
type Config struct {
	MailchimpAPIKey string

	// MailchimpBaseURL overrides the datacenter URL derived from the key.
	MailchimpBaseURL string

	WordPressURL      string
	WordPressUsername string
	WordPressPassword string
}

// ConfigFromEnv reads the service configuration from the environment.
func ConfigFromEnv() Config {
	return Config{
		MailchimpAPIKey:   os.Getenv("MAILCHIMP_API_KEY"),
		MailchimpBaseURL:  os.Getenv("MAILCHIMP_BASE_URL"),
		WordPressURL:      os.Getenv("WORDPRESS_URL"),
		WordPressUsername: os.Getenv("WORDPRESS_USERNAME"),
		WordPressPassword: os.Getenv("WORDPRESS_APP_PASSWORD"),
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config for the external services. Set before calling Run().
	Config Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Deliveries is exposed for end-to-end testing.
	Deliveries mailpress.DeliveryService
}

// NewMain returns a new instance of Main with defaults from the environment.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Config: ConfigFromEnv(),
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
		kong.Name("mailpress"),
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
		return fmt.Errorf("no command specified. Run 'mailpress --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	deps.Logger = logger

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MAILPRESS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.Deliveries = sqlite.NewDeliveryService(m.DB)
	deps.DB = m.DB
	deps.Deliveries = m.Deliveries

	extractor, err := newExtractor(cli.Rules)
	if err != nil {
		return err
	}
	deps.Extractor = mailzerolog.NewLoggingContentExtractor(extractor, logger)

	// Wire command-specific dependencies based on command
	if cmd == "serve" || cmd == "relay" {
		campaigns, err := m.newCampaignService(stderr)
		if err != nil {
			return err
		}
		wp, err := m.newWordPressClient(stderr)
		if err != nil {
			return err
		}

		mode := wordpress.Mode(cli.Serve.Mode)
		if cmd == "relay" {
			mode = wordpress.Mode(cli.Relay.Mode)
		}
		composer, err := wordpress.NewComposer(mode)
		if err != nil {
			return err
		}

		deps.Publisher = &publish.Publisher{
			Campaigns:  mailzerolog.NewLoggingCampaignService(campaigns, logger),
			Extractor:  deps.Extractor,
			Images:     mailhttp.NewFetcher(),
			Media:      mailzerolog.NewLoggingMediaService(wp, logger),
			Posts:      wp,
			Composer:   composer,
			Deliveries: m.Deliveries,
			Logger:     logger,
		}
	}

	if cmd == "preview" {
		deps.Converter = htmltomarkdown.NewConverter()
		if cli.Preview.File == "" && cli.Preview.CampaignID != "" {
			campaigns, err := m.newCampaignService(stderr)
			if err != nil {
				return err
			}
			deps.Campaigns = mailzerolog.NewLoggingCampaignService(campaigns, logger)
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) newCampaignService(stderr io.Writer) (mailpress.CampaignService, error) {
	if m.Config.MailchimpAPIKey == "" {
		fmt.Fprintln(stderr, "MAILCHIMP_API_KEY environment variable not set.")
		return nil, fmt.Errorf("MAILCHIMP_API_KEY not set")
	}

	var opts []mailchimp.Option
	if m.Config.MailchimpBaseURL != "" {
		opts = append(opts, mailchimp.WithBaseURL(m.Config.MailchimpBaseURL))
	}

	client, err := mailchimp.NewClient(m.Config.MailchimpAPIKey, opts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Mailchimp API keys carry a datacenter suffix, e.g. -us21")
		return nil, err
	}
	return client, nil
}

func (m *Main) newWordPressClient(stderr io.Writer) (*wordpress.Client, error) {
	if m.Config.WordPressURL == "" || m.Config.WordPressUsername == "" || m.Config.WordPressPassword == "" {
		fmt.Fprintln(stderr, "WORDPRESS_URL, WORDPRESS_USERNAME and WORDPRESS_APP_PASSWORD must be set.")
		return nil, fmt.Errorf("wordpress credentials not set")
	}
	return wordpress.NewClient(m.Config.WordPressURL, m.Config.WordPressUsername, m.Config.WordPressPassword)
}

// newExtractor builds the content extractor, applying rule overrides from
// the given YAML file when set.
func newExtractor(rulesPath string) (*goquery.Extractor, error) {
	if rulesPath == "" {
		return goquery.NewExtractor(), nil
	}

	data, err := os.ReadFile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	rules, err := goquery.ParseRules(data)
	if err != nil {
		return nil, err
	}
	return goquery.NewExtractor(goquery.WithRules(rules)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("MAILPRESS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mailpress.db"
	}
	dir := filepath.Join(home, ".mailpress")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mailpress.db")
}
