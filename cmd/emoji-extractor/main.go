package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	emojiextractor "github.com/hellenic-development/emoji-extractor"
	"github.com/hellenic-development/emoji-extractor/pkg/mattermost"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = mattermost.Version

var (
	serverURL   string
	accessToken string
	outputDir   string
	perPage     int
	delay       time.Duration
	configFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emoji-extractor",
		Short: "Extract custom emojis from a Mattermost server",
		Long:  "A tool to download all custom emoji images and their metadata from a Mattermost server via the REST API",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "", "Mattermost server URL, e.g. https://chat.example.com (or MATTERMOST_URL)")
	rootCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Personal access token or bot token (or MATTERMOST_TOKEN)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", emojiextractor.DefaultOutputDir, "Output directory for emoji images and metadata")
	rootCmd.Flags().IntVar(&perPage, "per-page", mattermost.MaxPerPage, "Emojis per listing page (server maximum 200)")
	rootCmd.Flags().DurationVar(&delay, "delay", emojiextractor.DefaultRequestDelay, "Pause between API requests")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file (flags take precedence)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("emoji-extractor version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// fileConfig mirrors the flag surface for users who prefer keeping the
// server URL and token in a file instead of shell history.
type fileConfig struct {
	ServerURL   string `yaml:"server_url"`
	AccessToken string `yaml:"access_token"`
	OutputDir   string `yaml:"output_dir"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	return &cfg, nil
}

// resolveConfig fills unset flag values from the config file (if given) and
// then from the environment. Flags always win.
func resolveConfig() error {
	if configFile != "" {
		cfg, err := loadConfigFile(configFile)
		if err != nil {
			return err
		}
		if serverURL == "" {
			serverURL = cfg.ServerURL
		}
		if accessToken == "" {
			accessToken = cfg.AccessToken
		}
		if outputDir == emojiextractor.DefaultOutputDir && cfg.OutputDir != "" {
			outputDir = cfg.OutputDir
		}
	}

	if serverURL == "" {
		serverURL = os.Getenv("MATTERMOST_URL")
	}
	if accessToken == "" {
		accessToken = os.Getenv("MATTERMOST_TOKEN")
	}

	return nil
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n😀 Mattermost Custom Emoji Extractor")
	cyan.Println("====================================")
	cyan.Println()

	if err := resolveConfig(); err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Refuse to touch the network until the caller has configured both
	// the server and a token.
	if serverURL == "" || accessToken == "" {
		red.Println("⚠ Missing configuration:")
		fmt.Println("   --server  Your Mattermost server URL (or MATTERMOST_URL)")
		fmt.Println("   --token   Your personal access token (or MATTERMOST_TOKEN)")
		fmt.Println("\nTo get a personal access token:")
		fmt.Println("1. Go to Account Settings → Security → Personal Access Tokens")
		fmt.Println("2. Create a new token with appropriate permissions")
		fmt.Println("3. Pass it via --token, a config file, or MATTERMOST_TOKEN")
		os.Exit(1)
	}

	result, err := emojiextractor.Run(emojiextractor.Options{
		ServerURL:    serverURL,
		AccessToken:  accessToken,
		OutputDir:    outputDir,
		PerPage:      perPage,
		RequestDelay: delay,
		Logger:       &cliLogger{},
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if len(result.Emojis) == 0 {
		return
	}

	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • Connected as: %s\n", result.Username)
	fmt.Printf("  • Downloaded: %d/%d emojis\n", result.Downloaded, len(result.Emojis))
	if len(result.Failed) > 0 {
		fmt.Printf("  • Failed: %s\n", strings.Join(result.Failed, ", "))
	}

	green.Printf("\n✨ Files saved to: %s\n\n", result.OutputDir)
}

// cliLogger implements emojiextractor.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
