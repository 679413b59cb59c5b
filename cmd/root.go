package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scrazzz/redgifs-go/config"
	"github.com/scrazzz/redgifs-go/redgifs"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *redgifs.Client

	// Command flags
	downloadURL string
	listFile    string
	showVersion bool
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build metadata for the --version flag.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "redgifs",
	Short: "Download media from RedGifs",
	Long: `redgifs is a client for the RedGifs API that can download media by URL,
download from a file containing a list of URLs, and search the library.`,
	PersistentPreRunE: initializeApp,
	RunE:              runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().StringVarP(&downloadURL, "download", "d", "", "download the media from the given link")
	rootCmd.Flags().StringVarP(&listFile, "list", "l", "", "download media from a file with one URL per line")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version info")

	rootCmd.AddCommand(searchCmd)
}

// initializeApp loads configuration, builds the logger and logs in a client.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []redgifs.Option{
		redgifs.WithTimeout(cfg.HTTP.Timeout),
		redgifs.WithUserAgent(cfg.HTTP.UserAgent),
	}
	if cfg.Proxy.URL != "" {
		opts = append(opts, redgifs.WithProxy(cfg.Proxy.URL, cfg.Proxy.Username, cfg.Proxy.Password))
	}

	client, err = redgifs.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Login(context.Background(), cfg.Auth.Username, cfg.Auth.Password); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ran := false

	if downloadURL != "" {
		ran = true
		if err := downloadOne(ctx, downloadURL); err != nil {
			return err
		}
	}

	if listFile != "" {
		ran = true
		if err := downloadList(ctx, listFile); err != nil {
			return err
		}
	}

	if showVersion {
		ran = true
		printVersion()
	}

	if !ran {
		_ = cmd.Help()
		return fmt.Errorf("no arguments given")
	}

	return client.Close()
}

func printVersion() {
	fmt.Printf("- redgifs %s (built %s)\n", version, buildTime)
	fmt.Printf("- %s\n", runtime.Version())
	fmt.Printf("- system info: %s %s\n", runtime.GOOS, runtime.GOARCH)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; never colorize a non-terminal.
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
