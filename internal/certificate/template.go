package certificate

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
)

// ErrTemplateNotFound aborts the whole batch: unlike a failed render it means
// the caller asked for a design that does not exist.
var ErrTemplateNotFound = errors.New("certificate template not found")

// Template is one named certificate design: a background image plus the
// geometry and typography for the three text blocks drawn over it.
type Template struct {
	ID         int
	Background string

	NameFont  string
	NameSize  float64
	NameColor color.Color
	NameY     float64

	CongratsFont     string
	CongratsSize     float64
	CongratsColor    color.Color
	CongratsY        float64
	CongratsMaxWidth float64
	LineSpacing      float64

	TeacherFont  string
	TeacherSize  float64
	TeacherColor color.Color
	TeacherX     float64
	TeacherY     float64
}

// Pool is the fixed set of available templates keyed by id.
type Pool map[int]Template

// Get resolves a template id, failing with ErrTemplateNotFound outside the
// pool.
func (p Pool) Get(id int) (Template, error) {
	tpl, ok := p[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: id %d", ErrTemplateNotFound, id)
	}
	return tpl, nil
}

// IDs returns the template ids in ascending order for pagination.
func (p Pool) IDs() []int {
	ids := make([]int, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DefaultPool builds the four stock templates rooted at the assets dir.
func DefaultPool(dir string) Pool {
	brown := color.RGBA{R: 0x86, G: 0x5b, B: 0x34, A: 0xff}
	umber := color.RGBA{R: 0x54, G: 0x3c, B: 0x19, A: 0xff}
	gold := color.RGBA{R: 0xb2, G: 0x74, B: 0x09, A: 0xff}
	tan := color.RGBA{R: 0xa2, G: 0x74, B: 0x30, A: 0xff}
	black := color.Black

	return Pool{
		1: {
			ID:         1,
			Background: filepath.Join(dir, "sertifikat1.png"),
			NameFont:   filepath.Join(dir, "sertifikat1_ism.ttf"), NameSize: 100, NameColor: brown, NameY: 550,
			CongratsFont: filepath.Join(dir, "sertifikat1_matn.ttf"), CongratsSize: 30, CongratsColor: black,
			CongratsY: 690, CongratsMaxWidth: 850, LineSpacing: 40,
			TeacherFont: filepath.Join(dir, "sertifikat1_matn.ttf"), TeacherSize: 40, TeacherColor: brown,
			TeacherX: 1215, TeacherY: 1050,
		},
		2: {
			ID:         2,
			Background: filepath.Join(dir, "sertifikat2.png"),
			NameFont:   filepath.Join(dir, "sertifikat2_ism.otf"), NameSize: 100, NameColor: umber, NameY: 550,
			CongratsFont: filepath.Join(dir, "sertifikat2_matn.ttf"), CongratsSize: 30, CongratsColor: black,
			CongratsY: 700, CongratsMaxWidth: 850, LineSpacing: 40,
			TeacherFont: filepath.Join(dir, "sertifikat2_teacher.ttf"), TeacherSize: 40, TeacherColor: umber,
			TeacherX: 1100, TeacherY: 1150,
		},
		3: {
			ID:         3,
			Background: filepath.Join(dir, "sertifikat3.png"),
			NameFont:   filepath.Join(dir, "sertifikat3_ism.ttf"), NameSize: 100, NameColor: gold, NameY: 650,
			CongratsFont: filepath.Join(dir, "sertifikat3_matn.ttf"), CongratsSize: 30, CongratsColor: black,
			CongratsY: 770, CongratsMaxWidth: 850, LineSpacing: 40,
			TeacherFont: filepath.Join(dir, "sertifikat3_teacher.ttf"), TeacherSize: 40, TeacherColor: gold,
			TeacherX: 1100, TeacherY: 1058,
		},
		4: {
			ID:         4,
			Background: filepath.Join(dir, "sertifikat4.png"),
			NameFont:   filepath.Join(dir, "sertifikat4_ism.ttf"), NameSize: 100, NameColor: gold, NameY: 530,
			CongratsFont: filepath.Join(dir, "sertifikat4_matn.ttf"), CongratsSize: 30, CongratsColor: tan,
			CongratsY: 680, CongratsMaxWidth: 850, LineSpacing: 40,
			TeacherFont: filepath.Join(dir, "sertifikat4_matn.ttf"), TeacherSize: 40, TeacherColor: tan,
			TeacherX: 1175, TeacherY: 1058,
		},
	}
}
