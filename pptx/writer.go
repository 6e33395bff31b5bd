package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"
)

// defaultCreated stamps docProps/core.xml when Deck.Created is zero,
// keeping repeated conversions byte-identical.
var defaultCreated = time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)

const (
	defaultSlideWidth  = 1280 * EMUPerPx
	defaultSlideHeight = 720 * EMUPerPx
)

// WriteFile writes the deck as a .pptx package at path. On failure the
// partial file is removed.
func (d *Deck) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Write streams the deck as a zip package. Part order is fixed and zip
// entries carry no timestamps, so output depends only on deck content.
func (d *Deck) Write(out io.Writer) error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	zw := zip.NewWriter(out)

	if err := d.writeContentTypes(zw); err != nil {
		return err
	}
	if err := d.writeRootRels(zw); err != nil {
		return err
	}
	if err := d.writeCoreProps(zw); err != nil {
		return err
	}
	if err := d.writeAppProps(zw); err != nil {
		return err
	}
	if err := d.writePresentation(zw); err != nil {
		return err
	}
	if err := d.writePresentationRels(zw); err != nil {
		return err
	}
	if err := d.writePresProps(zw); err != nil {
		return err
	}
	if err := d.writeViewProps(zw); err != nil {
		return err
	}
	if err := d.writeTableStyles(zw); err != nil {
		return err
	}
	if err := d.writeTheme(zw); err != nil {
		return err
	}
	if err := d.writeSlideMaster(zw); err != nil {
		return err
	}
	if err := d.writeSlideLayout(zw); err != nil {
		return err
	}

	for i, slide := range d.Slides {
		num := i + 1
		rels := d.buildSlideRels(slide, num)
		if err := d.writeSlide(zw, slide, num, rels); err != nil {
			return err
		}
		if err := d.writeSlideRels(zw, slide, num, rels); err != nil {
			return err
		}
		if slide.Notes != "" {
			if err := d.writeNotesSlide(zw, slide, num); err != nil {
				return err
			}
		}
	}

	if err := d.writeMedia(zw); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing package: %w", err)
	}
	return nil
}

func (d *Deck) slideWidth() int64 {
	if d.SlideWidth > 0 {
		return d.SlideWidth
	}
	return defaultSlideWidth
}

func (d *Deck) slideHeight() int64 {
	if d.SlideHeight > 0 {
		return d.SlideHeight
	}
	return defaultSlideHeight
}

func (d *Deck) created() time.Time {
	if d.Created.IsZero() {
		return defaultCreated
	}
	return d.Created
}

func writePart(zw *zip.Writer, path, content string) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", path, err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		return fmt.Errorf("writing part %s: %w", path, err)
	}
	return nil
}

// pictures returns every picture in the deck with an embedded payload,
// in slide and z order. Media part numbering follows this order.
func (d *Deck) pictures() []*Picture {
	var pics []*Picture
	for _, slide := range d.Slides {
		for _, shape := range slide.Shapes {
			if p, ok := shape.(*Picture); ok && len(p.Data) > 0 {
				pics = append(pics, p)
			}
		}
	}
	return pics
}

func (d *Deck) pictureIndex(target *Picture) int {
	for i, p := range d.pictures() {
		if p == target {
			return i + 1
		}
	}
	return 0
}

func (d *Deck) writeMedia(zw *zip.Writer) error {
	for i, p := range d.pictures() {
		name := fmt.Sprintf("ppt/media/image%d.%s", i+1, imageExt(p.Format))
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating media %s: %w", name, err)
		}
		if _, err := fw.Write(p.Data); err != nil {
			return fmt.Errorf("writing media %s: %w", name, err)
		}
	}
	return nil
}

func imageExt(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "jpeg"
	case "gif":
		return "gif"
	default:
		return "png"
	}
}

func imageContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
