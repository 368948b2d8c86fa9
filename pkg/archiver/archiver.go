package archiver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellenic-development/emoji-extractor/pkg/mattermost"
)

// MetadataFileName is the name of the JSON sidecar file holding the full
// emoji collection, written into the output directory on every run.
const MetadataFileName = "emoji_metadata.json"

// ImageFetcher provides emoji image streams. *mattermost.Client satisfies it.
type ImageFetcher interface {
	GetEmojiImage(id string) (io.ReadCloser, string, error)
}

// SaveMetadata serializes the emoji collection as pretty-printed JSON to
// MetadataFileName inside dir, overwriting any prior content. Returns the
// path of the written file.
func SaveMetadata(dir string, emojis []mattermost.Emoji) (string, error) {
	data, err := json.MarshalIndent(emojis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode emoji metadata: %w", err)
	}

	path := filepath.Join(dir, MetadataFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}

	return path, nil
}

// DownloadEmoji fetches the image for one emoji and streams it to
// {dir}/{name}.{ext}, where the extension is derived from the response
// content type. Returns the written filename. Two emojis sharing a name
// overwrite each other's file; the server guarantees name uniqueness, so
// this only matters for hand-crafted inputs.
func DownloadEmoji(fetcher ImageFetcher, emoji mattermost.Emoji, dir string) (string, error) {
	body, contentType, err := fetcher.GetEmojiImage(emoji.ID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer body.Close()

	fileName := emoji.Name + "." + ExtensionFromContentType(contentType)
	destPath := filepath.Join(dir, fileName)

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %q: %w", destPath, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file %q: %w", destPath, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %q: %w", destPath, err)
	}

	return fileName, nil
}

// ExtensionFromContentType maps an HTTP content type to an image file
// extension by substring match. Unrecognized types default to png, which is
// what Mattermost serves for the vast majority of custom emojis.
func ExtensionFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	default:
		return "png"
	}
}
