package certificate

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// RenderInput carries everything needed to draw one certificate.
type RenderInput struct {
	FullName    string
	Subject     string
	Percent     int
	Rank        int
	TeacherName string
}

// Renderer produces one certificate image per call. Implemented by
// ImageRenderer; faked in batch tests.
type Renderer interface {
	Render(tpl Template, in RenderInput, outPath string) error
}

// fontCache holds parsed font faces keyed by (file, size). Faces are
// immutable once cached, so concurrent renders in a batch share them freely.
type fontCache struct {
	mu    sync.Mutex
	faces map[string]font.Face
}

func newFontCache() *fontCache {
	return &fontCache{faces: make(map[string]font.Face)}
}

// face loads and caches a font face. Missing or broken font files degrade to
// the built-in face instead of failing the render.
func (c *fontCache) face(path string, size float64) font.Face {
	key := fmt.Sprintf("%s_%.0f", path, size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}

	f := loadFace(path, size)
	c.faces[key] = f
	return f
}

func loadFace(path string, size float64) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		return basicfont.Face7x13
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(ft, &truetype.Options{Size: size})
}

// ImageRenderer draws certificates over template backgrounds.
type ImageRenderer struct {
	fonts *fontCache
}

func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{fonts: newFontCache()}
}

// congratsText is the sentence drawn in the middle of the certificate, with
// subject, percent, teacher and rank substituted in.
func congratsText(in RenderInput) string {
	return fmt.Sprintf(
		"Telegram botimiz orqali %s fanidan o`tkazilgan testimizdan %d%% natija ko'rsatgani uchun %s tomonidan %d-o'rin bilan taqdirlandi",
		in.Subject, in.Percent, in.TeacherName, in.Rank,
	)
}

// Render draws the student name centered at the template's name offset, the
// wrapped congratulatory sentence below it and the teacher name at its fixed
// position, then writes the result to outPath.
func (r *ImageRenderer) Render(tpl Template, in RenderInput, outPath string) error {
	bg, err := imaging.Open(tpl.Background)
	if err != nil {
		return fmt.Errorf("open template background: %w", err)
	}

	dc := gg.NewContextForImage(bg)
	width := float64(dc.Width())

	dc.SetFontFace(r.fonts.face(tpl.NameFont, tpl.NameSize))
	dc.SetColor(tpl.NameColor)
	nameW, _ := dc.MeasureString(in.FullName)
	dc.DrawString(in.FullName, (width-nameW)/2, tpl.NameY)

	dc.SetFontFace(r.fonts.face(tpl.CongratsFont, tpl.CongratsSize))
	dc.SetColor(tpl.CongratsColor)
	drawWrappedCentered(dc, congratsText(in), width, tpl.CongratsMaxWidth, tpl.CongratsY, tpl.LineSpacing)

	dc.SetFontFace(r.fonts.face(tpl.TeacherFont, tpl.TeacherSize))
	dc.SetColor(tpl.TeacherColor)
	dc.DrawString(in.TeacherName, tpl.TeacherX, tpl.TeacherY)

	if err := imaging.Save(dc.Image(), outPath, imaging.JPEGQuality(80)); err != nil {
		return fmt.Errorf("save certificate: %w", err)
	}
	return nil
}

// drawWrappedCentered word-wraps text to maxWidth and draws each line
// horizontally centered, stepping down by lineSpacing per line.
func drawWrappedCentered(dc *gg.Context, text string, imgWidth, maxWidth, startY, lineSpacing float64) {
	var lines []string
	var current []string
	for _, word := range strings.Fields(text) {
		candidate := strings.Join(append(current[:len(current):len(current)], word), " ")
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	y := startY
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		dc.DrawString(line, (imgWidth-w)/2, y)
		y += lineSpacing
	}
}
