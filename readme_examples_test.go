package htmldeck_test

import (
	"context"
	"fmt"
	"log"

	"github.com/htmldeck/htmldeck"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_convert() {
	result, warnings, err := htmldeck.Open("deck.html").
		Save(context.Background(), "deck.pptx")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d slides, %d shapes\n", result.Slides, result.Shapes)

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_convertWithOptions() {
	result, warnings, err := htmldeck.Open("deck.html").
		WithBrowser().      // measure layout in headless Chrome
		WithNotes().        // attach slide text as Markdown speaker notes
		Quality(90).        // JPEG quality for downscaled images
		NoRemoteImages().   // skip http(s) image sources
		Author("Jane Doe"). // document metadata
		Save(context.Background(), "deck.pptx")
	_ = result
	_ = warnings
	_ = err
}

func Example_inspectDeck() {
	// Deck returns the in-memory presentation for inspection or
	// post-processing before writing.
	deck, warnings, err := htmldeck.Open("deck.html").Deck(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	_ = warnings

	for i, slide := range deck.Slides {
		fmt.Printf("slide %d: %d shapes\n", i+1, len(slide.Shapes))
	}

	if err := deck.WriteFile("deck.pptx"); err != nil {
		log.Fatal(err)
	}
}
