// Command htmldeck converts an HTML page into a PowerPoint (.pptx)
// presentation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/htmldeck/htmldeck"
	"github.com/htmldeck/htmldeck/format"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		useBrowser  bool
		screenshots bool
		withNotes   bool
		withOCR     bool
		noRemote    bool
		quality     int
		author      string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "htmldeck <input.html> <output.pptx>",
		Short: "Convert an HTML page into a PowerPoint presentation",
		Long: `htmldeck renders the visual structure of an HTML page as PowerPoint
shapes: styled text as text boxes, images as embedded pictures, links as
clickable text, and decorated containers as filled rectangles.

Elements carrying a "slide" class each become one slide; without them
the whole page maps to a single 1280x720 slide.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			logger := newLogger(logLevel)
			slog.SetDefault(logger)

			if format.Detect(input) != format.HTML {
				return fmt.Errorf("input %q is not an .html or .htm file", input)
			}
			if format.Detect(output) != format.PPTX {
				return fmt.Errorf("output %q is not a .pptx file", output)
			}

			conv := htmldeck.Open(input).
				Quality(quality).
				Author(author).
				Logger(logger)
			if useBrowser {
				conv = conv.WithBrowser()
			}
			if screenshots {
				conv = conv.Screenshots()
			}
			if withNotes {
				conv = conv.WithNotes()
			}
			if withOCR {
				conv = conv.WithOCR()
			}
			if noRemote {
				conv = conv.NoRemoteImages()
			}

			result, warnings, err := conv.Save(cmd.Context(), output)
			for _, w := range warnings {
				logger.Warn(w.Message, "stage", w.Stage, "element", w.Element)
			}
			if err != nil {
				logger.Error("conversion failed", "input", input, "error", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d slides, %d shapes, %d images\n",
				output, result.Slides, result.Shapes, result.Images)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useBrowser, "browser", false, "measure layout with headless Chrome instead of the static estimator")
	cmd.Flags().BoolVar(&screenshots, "screenshots", false, "render each slide as a single browser screenshot (implies --browser)")
	cmd.Flags().BoolVar(&withNotes, "notes", false, "attach each slide's text content as Markdown speaker notes")
	cmd.Flags().BoolVar(&withOCR, "ocr", false, "derive image alt text via OCR (requires the ocr build tag)")
	cmd.Flags().BoolVar(&noRemote, "no-remote-images", false, "skip http(s) image sources")
	cmd.Flags().IntVar(&quality, "quality", 85, "JPEG quality for downscaled images (1-100)")
	cmd.Flags().StringVar(&author, "author", "", "document author metadata")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
