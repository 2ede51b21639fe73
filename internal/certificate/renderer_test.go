package certificate

import (
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

func writeBackground(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "background.png")
	img := imaging.New(1200, 800, color.NRGBA{R: 250, G: 245, B: 230, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("write background: %v", err)
	}
	return path
}

func TestImageRendererRender(t *testing.T) {
	dir := t.TempDir()
	tpl := Template{
		ID:         1,
		Background: writeBackground(t, dir),
		// Font files intentionally missing: the renderer degrades to the
		// built-in face rather than failing.
		NameFont: filepath.Join(dir, "nope.ttf"), NameSize: 40, NameColor: color.Black, NameY: 200,
		CongratsFont: filepath.Join(dir, "nope.ttf"), CongratsSize: 20, CongratsColor: color.Black,
		CongratsY: 300, CongratsMaxWidth: 600, LineSpacing: 30,
		TeacherFont: filepath.Join(dir, "nope.ttf"), TeacherSize: 20, TeacherColor: color.Black,
		TeacherX: 900, TeacherY: 700,
	}

	out := filepath.Join(dir, "cert.jpg")
	r := NewImageRenderer()
	in := RenderInput{FullName: "Ali Valiyev", Subject: "Matematika", Percent: 90, Rank: 1, TeacherName: "A. Karimov"}
	if err := r.Render(tpl, in, out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("reopen rendered certificate: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 1200, 800) {
		t.Fatalf("rendered bounds = %v", got)
	}
}

func TestImageRendererMissingBackground(t *testing.T) {
	tpl := Template{Background: filepath.Join(t.TempDir(), "missing.png")}
	r := NewImageRenderer()
	if err := r.Render(tpl, RenderInput{FullName: "X"}, filepath.Join(t.TempDir(), "out.jpg")); err == nil {
		t.Fatal("expected error for missing background")
	}
}

func TestFontCacheReusesFaces(t *testing.T) {
	c := newFontCache()
	path := filepath.Join(t.TempDir(), "missing.ttf")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.face(path, 40)
		}()
	}
	wg.Wait()

	if len(c.faces) != 1 {
		t.Fatalf("cache holds %d faces, want 1", len(c.faces))
	}
	if c.face(path, 40) != c.face(path, 40) {
		t.Fatal("repeated lookups returned different faces")
	}
	c.face(path, 60)
	if len(c.faces) != 2 {
		t.Fatalf("distinct sizes must cache separately, got %d entries", len(c.faces))
	}
}
