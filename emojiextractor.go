package emojiextractor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hellenic-development/emoji-extractor/pkg/archiver"
	"github.com/hellenic-development/emoji-extractor/pkg/mattermost"
)

const (
	// DefaultOutputDir is where emoji images and metadata land when no
	// output directory is configured.
	DefaultOutputDir = "mattermost-emojis"

	// DefaultRequestDelay is the courtesy pause between consecutive API
	// requests. It bounds the request rate; it is not a retry mechanism.
	DefaultRequestDelay = 100 * time.Millisecond
)

// Options configures the extraction.
type Options struct {
	ServerURL    string        // Mattermost server base URL, e.g. https://chat.example.com
	AccessToken  string        // personal access token or bot token
	OutputDir    string        // default "mattermost-emojis"
	PerPage      int           // listing page size, clamped to the server maximum of 200
	RequestDelay time.Duration // pause between API requests, default 100ms
	Logger       Logger        // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the extraction output.
type Result struct {
	Username   string             // who the access token authenticated as
	Emojis     []mattermost.Emoji // full listed collection, name-sorted
	Downloaded int                // images written successfully
	Failed     []string           // names of emojis whose image download failed
	OutputDir  string             // absolute path of the output directory
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Run executes the full extraction pipeline: verify credentials, list every
// custom emoji page by page, persist the metadata sidecar, then download each
// image in listing order. A connect failure aborts the run; a listing failure
// truncates it to what was already fetched; a download failure is tallied and
// the run continues with the next emoji.
func Run(opts Options) (*Result, error) {
	// Apply defaults.
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.PerPage <= 0 || opts.PerPage > mattermost.MaxPerPage {
		opts.PerPage = mattermost.MaxPerPage
	}
	if opts.RequestDelay == 0 {
		opts.RequestDelay = DefaultRequestDelay
	}

	// Configuration is validated before any network activity.
	if opts.ServerURL == "" || opts.AccessToken == "" {
		return nil, fmt.Errorf("server URL and access token must be configured")
	}
	serverURL, err := mattermost.NormalizeServerURL(opts.ServerURL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", opts.OutputDir, err)
	}

	client := mattermost.NewClient(serverURL, opts.AccessToken)

	opts.logInfo("Connecting to %s...", serverURL)
	user, err := client.Me()
	if err != nil {
		return nil, fmt.Errorf("connect to Mattermost: %w", err)
	}
	opts.logInfo("Connected successfully as: %s", user.Username)

	emojis := listAllEmojis(&opts, client)

	absDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		absDir = opts.OutputDir
	}

	result := &Result{
		Username:  user.Username,
		Emojis:    emojis,
		OutputDir: absDir,
	}

	if len(emojis) == 0 {
		opts.logWarn("No custom emojis found or unable to retrieve emojis.")
		return result, nil
	}

	metadataPath, err := archiver.SaveMetadata(opts.OutputDir, emojis)
	if err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	opts.logInfo("Saved emoji metadata to %s", metadataPath)

	opts.logInfo("Downloading emoji images to %s...", opts.OutputDir)
	for i, emoji := range emojis {
		if _, err := archiver.DownloadEmoji(client, emoji, opts.OutputDir); err != nil {
			opts.logError("[%d/%d] %s: %v", i+1, len(emojis), emoji.Name, err)
			result.Failed = append(result.Failed, emoji.Name)
		} else {
			opts.logInfo("[%d/%d] %s", i+1, len(emojis), emoji.Name)
			result.Downloaded++
		}

		// Small delay to be respectful to the API.
		time.Sleep(opts.RequestDelay)
	}

	opts.logInfo("Downloaded %d/%d emojis successfully", result.Downloaded, len(emojis))

	return result, nil
}

// listAllEmojis pages through the emoji listing starting at page 0 and
// accumulates every record. A short page ends the listing; so does a page
// error, which truncates the collection to what was already fetched
// instead of aborting the run.
func listAllEmojis(opts *Options, client *mattermost.Client) []mattermost.Emoji {
	var all []mattermost.Emoji

	opts.logInfo("Fetching custom emojis...")

	for page := 0; ; page++ {
		emojis, err := client.GetEmojiPage(page, opts.PerPage)
		if err != nil {
			opts.logWarn("Error fetching emojis on page %d: %v", page, err)
			break
		}
		if len(emojis) == 0 {
			break
		}

		all = append(all, emojis...)
		opts.logInfo("Retrieved %d emojis from page %d", len(emojis), page+1)

		if len(emojis) < opts.PerPage {
			break
		}

		time.Sleep(opts.RequestDelay)
	}

	opts.logInfo("Total custom emojis found: %d", len(all))

	return all
}
