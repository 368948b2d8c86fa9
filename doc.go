// Package emojiextractor downloads every custom emoji from a Mattermost
// server: it authenticates with a bearer token, pages through the emoji
// listing, writes the full metadata collection to a JSON sidecar file, and
// saves each emoji image under its name with an extension derived from the
// response content type.
//
// The CLI lives in cmd/emoji-extractor; this root package exposes the same
// pipeline as a Go API so that callers can embed extraction in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named emojiextractor:
//
//	import "github.com/hellenic-development/emoji-extractor" // package emojiextractor
//
// # Quick start
//
//	result, err := emojiextractor.Run(emojiextractor.Options{
//	    ServerURL:   "https://chat.example.com",
//	    AccessToken: os.Getenv("MATTERMOST_TOKEN"),
//	    OutputDir:   "mattermost-emojis",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("downloaded %d/%d emojis to %s\n",
//	    result.Downloaded, len(result.Emojis), result.OutputDir)
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Failure model
//
// A failed credential check aborts the run before anything is written. A
// failed listing page truncates the collection to what was already fetched.
// A failed image download is recorded in [Result.Failed] and the run moves
// on to the next emoji. An empty collection ends the run without writing
// the metadata file.
package emojiextractor
