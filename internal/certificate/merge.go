package certificate

import (
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/signintech/gopdf"
)

// mergePDF assembles the rendered pages, in order, into a single PDF with
// one page per image, each page sized to its image.
func mergePDF(pages []string, outPath string) error {
	if len(pages) == 0 {
		return errors.New("no rendered certificates")
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	for _, page := range pages {
		img, err := imaging.Open(page)
		if err != nil {
			return fmt.Errorf("open page %s: %w", page, err)
		}
		// Normalize the color mode before embedding.
		img = imaging.Clone(img)

		bounds := img.Bounds()
		rect := gopdf.Rect{W: float64(bounds.Dx()), H: float64(bounds.Dy())}
		pdf.AddPageWithOption(gopdf.PageOption{PageSize: &rect})
		if err := pdf.ImageFrom(img, 0, 0, &rect); err != nil {
			return fmt.Errorf("place page %s: %w", page, err)
		}
	}

	if err := pdf.WritePdf(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
