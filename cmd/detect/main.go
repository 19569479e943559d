package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/client"
)

func main() {
	relayURL := flag.String("relay", "http://localhost:3000", "Relay base URL")
	interval := flag.Duration("interval", client.DefaultPollInterval, "Delay between result polls")
	attempts := flag.Int("attempts", client.DefaultMaxAttempts, "Maximum result polls before giving up")
	skipHistory := flag.Bool("no-history", false, "Skip printing submission history")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image-file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*relayURL, *interval, *attempts, !*skipHistory, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(relayURL string, interval time.Duration, attempts int, withHistory bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if !logopulse.ValidContentType(contentType) {
		return fmt.Errorf("%s: only .jpg/.jpeg and .png files are supported", path)
	}

	c := client.NewClient(relayURL)
	poller := client.NewPoller(c,
		client.WithInterval(interval),
		client.WithMaxAttempts(attempts),
	)
	session := client.NewSessionWith(c, client.NewSubmitter(nil), poller)

	fmt.Printf("Submitting %s (%s)...\n", filepath.Base(path), contentType)

	outcome, err := session.Submit(context.Background(), path, contentType, bytes.NewReader(data))
	if errors.Is(err, logopulse.ErrPollTimeout) {
		return fmt.Errorf("image accepted upstream, but %w", err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Stored as %s\n", outcome.Key)
	printLabel(outcome.Label, data)

	if withHistory {
		history, err := c.ListHistory(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}
		printHistory(history)
	}

	return nil
}

func printLabel(label *logopulse.Label, imageData []byte) {
	if !label.Detected() {
		fmt.Println("No label detected.")
		return
	}

	fmt.Printf("Detected %q (%.1f%% confidence)\n", label.Name, label.Confidence)

	if label.BoundingBox == nil {
		return
	}

	// Scale the normalized box to pixels when the image decodes.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		fmt.Printf("Bounding box (normalized): left=%.3f top=%.3f width=%.3f height=%.3f\n",
			label.BoundingBox.Left, label.BoundingBox.Top,
			label.BoundingBox.Width, label.BoundingBox.Height)
		return
	}

	x, y, w, h := label.BoundingBox.Scale(cfg.Width, cfg.Height)
	fmt.Printf("Bounding box: %dx%d at (%d, %d)\n", w, h, x, y)
}

func printHistory(history []logopulse.HistoryRecord) {
	fmt.Printf("\nHistory (%d submissions):\n", len(history))
	for _, rec := range history {
		status := "pending"
		if rec.Label != nil {
			if rec.Label.Detected() {
				status = fmt.Sprintf("%s (%.1f%%)", rec.Label.Name, rec.Label.Confidence)
			} else {
				status = "no label"
			}
		}
		fmt.Printf("  %-40s %-20s %s\n", rec.ImageKey, status, rec.ImageUrl)
	}
}
