// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/chatstream/cli/config"
	"github.com/petal-labs/chatstream/cli/keystore"
	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/providers/openai"
)

// keyName is the keystore entry holding the service API key.
const keyName = "openai"

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates a service client using CLI config context.
type ClientFactory func(apiKey string, cfg *config.Config, hook core.TelemetryHook) *openai.Client

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	cfgFile     string
	model       string
	jsonOutput  bool
	verbose     bool
	cfg         *config.Config
	chat        chatFlags
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   defaultClientFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chatstream",
		Short: "chatstream - chat completions from the command line",
		Long: `chatstream sends chat completion requests and prints the reply,
either all at once or token by token as it streams in.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.chatstream/config.yaml)")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model ID (e.g. gpt-3.5-turbo)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log request lifecycle to stderr")

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the root command with ctx; cancelling it aborts any
// request in flight.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Run executes the command line and returns the process exit code. Errors
// not already reported by a command are written to stderr.
func (a *App) Run(ctx context.Context, args []string) int {
	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.reported {
			a.reportError("error", ee.Error(), nil)
		}
		return ee.code
	}
	a.reportError("error", err.Error(), nil)
	return ExitValidation
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	a.cfg = cfg

	// Apply config defaults if flags not set.
	if a.model == "" && cfg.DefaultModel != "" {
		a.model = cfg.DefaultModel
	}

	return nil
}

// telemetry returns a log hook writing to stderr when --verbose is set.
func (a *App) telemetry() core.TelemetryHook {
	if !a.verbose {
		return core.NoopTelemetryHook{}
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return core.NewLogHook(logger)
}

// client resolves the API key and builds a client.
func (a *App) client() (*openai.Client, error) {
	apiKey, err := a.resolveAPIKey()
	if err != nil {
		return nil, err
	}
	return a.newClient(apiKey, a.cfg, a.telemetry()), nil
}

// resolveAPIKey prefers the keystore and falls back to OPENAI_API_KEY.
func (a *App) resolveAPIKey() (string, error) {
	ks, err := a.newKeystore()
	if err == nil {
		key, gerr := ks.Get(keyName)
		if gerr == nil {
			return key, nil
		}
		if _, ok := gerr.(*keystore.ErrKeyNotFound); !ok {
			return "", exitWithCode(ExitValidation, gerr)
		}
	}

	if key := os.Getenv(openai.DefaultAPIKeyEnvVar); key != "" {
		return key, nil
	}
	return "", exitWithCode(ExitValidation, errNoAPIKey)
}

func defaultClientFactory(apiKey string, cfg *config.Config, hook core.TelemetryHook) *openai.Client {
	opts := []openai.Option{openai.WithTelemetry(hook)}
	if cfg != nil {
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.OrgID != "" {
			opts = append(opts, openai.WithOrgID(cfg.OrgID))
		}
		if cfg.ProjectID != "" {
			opts = append(opts, openai.WithProjectID(cfg.ProjectID))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, openai.WithTimeout(cfg.Timeout))
		}
	}
	return openai.New(apiKey, opts...)
}
