package report

import (
	"strconv"
	"time"

	"test-checker-backend/internal/ranking"
)

// Columns is the fixed export column order. The spreadsheet writer and any
// other consumer must keep this order.
var Columns = []string{
	"T/r",
	"F.I.Sh.",
	"Telefon raqami",
	"To'g'ri javoblar",
	"Jami savollar",
	"Foiz (%)",
	"Telegram ID",
	"Javoblar",
}

// HeaderRowOffset is the number of worksheet rows occupied by the metadata
// block; the column header row comes right after it.
const HeaderRowOffset = 4

// Row is one exported participant line.
type Row struct {
	Rank       int
	FullName   string
	Phone      string
	Correct    int
	Total      int
	Percent    float64
	UserID     int64
	AnswersRaw string
}

// cells renders the row's values as strings in the order of Columns.
func (r Row) cells() []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.FullName,
		r.Phone,
		strconv.Itoa(r.Correct),
		strconv.Itoa(r.Total),
		strconv.FormatFloat(r.Percent, 'f', 1, 64),
		strconv.FormatInt(r.UserID, 10),
		r.AnswersRaw,
	}
}

// Table is the exportable participant report for one finished test.
type Table struct {
	Title       string
	TeacherName string
	GeneratedAt time.Time
	Rows        []Row
}

// Build derives the report table from ranked entries. Callers filter and rank
// the entries first (see ranking.DropUnnamed); Build itself adds nothing but
// column derivation.
func Build(title, teacherName string, entries []ranking.Entry, now time.Time) *Table {
	t := &Table{Title: title, TeacherName: teacherName, GeneratedAt: now}
	for _, e := range entries {
		t.Rows = append(t.Rows, Row{
			Rank:       e.Rank,
			FullName:   e.FullName(),
			Phone:      e.PhoneNumber,
			Correct:    e.Correct,
			Total:      e.Total,
			Percent:    e.Percent(),
			UserID:     e.UserID,
			AnswersRaw: e.AnswersRaw,
		})
	}
	return t
}

// metaLines is the metadata block preceding the table.
func (t *Table) metaLines() []string {
	return []string{
		"Test: " + t.Title,
		"Muallif: " + t.TeacherName,
		"Yaratilgan vaqti: " + t.GeneratedAt.Format("2006-01-02 15:04"),
		"Ishtirokchilar soni: " + strconv.Itoa(len(t.Rows)),
	}
}

// columnWidth sizes a column to its longest header or value plus two
// characters of padding.
func (t *Table) columnWidth(col int) int {
	width := len([]rune(Columns[col]))
	for _, row := range t.Rows {
		if l := len([]rune(row.cells()[col])); l > width {
			width = l
		}
	}
	return width + 2
}
