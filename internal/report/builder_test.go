package report

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"test-checker-backend/internal/ranking"
)

func sampleEntries() []ranking.Entry {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	results := []ranking.ScoredResult{
		{UserID: 11, FirstName: "Ali", LastName: "Valiyev", PhoneNumber: "+998901234567", Correct: 9, Total: 10, AnswersRaw: "1a2b3c", SubmittedAt: base},
		{UserID: 22, FirstName: "Vali", Correct: 1, Total: 3, AnswersRaw: "1a2a3a", SubmittedAt: base.Add(time.Minute)},
	}
	return ranking.Rank(results, ranking.TieBreakTimestamp)
}

func TestBuildColumns(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	table := Build("Matematika", "A. Karimov", sampleEntries(), now)

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	first := table.Rows[0]
	if first.Rank != 1 || first.FullName != "Ali Valiyev" || first.UserID != 11 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Percent != 90.0 {
		t.Fatalf("first row percent = %v, want 90.0", first.Percent)
	}

	// 1/3 rounds to one decimal place.
	if table.Rows[1].Percent != 33.3 {
		t.Fatalf("second row percent = %v, want 33.3", table.Rows[1].Percent)
	}

	cells := first.cells()
	if len(cells) != len(Columns) {
		t.Fatalf("row renders %d cells for %d columns", len(cells), len(Columns))
	}
	want := []string{"1", "Ali Valiyev", "+998901234567", "9", "10", "90.0", "11", "1a2b3c"}
	if !reflect.DeepEqual(cells, want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
}

func TestBuildIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	a := Build("Fizika", "B. Tosheva", sampleEntries(), now)
	b := Build("Fizika", "B. Tosheva", sampleEntries(), now)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two builds over the same entries differ")
	}
}

func TestColumnWidth(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	table := Build("Tarix", "C. Qodirov", sampleEntries(), now)

	// Name column: longest value is "Ali Valiyev" (11 runes) > header "F.I.Sh." (7).
	if got, want := table.columnWidth(1), 11+2; got != want {
		t.Fatalf("name column width = %d, want %d", got, want)
	}
	// Rank column: header "T/r" (3 runes) wins over single-digit ranks.
	if got, want := table.columnWidth(0), 3+2; got != want {
		t.Fatalf("rank column width = %d, want %d", got, want)
	}
}

func TestWriteXLSX(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	table := Build("Kimyo", "D. Rahimova", sampleEntries(), now)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteXLSX(table, path); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	meta, err := f.GetCellValue(sheetName, "A1")
	if err != nil || meta != "Test: Kimyo" {
		t.Fatalf("A1 = %q (err %v), want metadata line", meta, err)
	}

	headerCell, _ := excelize.CoordinatesToCellName(1, HeaderRowOffset+1)
	header, _ := f.GetCellValue(sheetName, headerCell)
	if header != Columns[0] {
		t.Fatalf("header row starts with %q, want %q", header, Columns[0])
	}

	nameCell, _ := excelize.CoordinatesToCellName(2, HeaderRowOffset+2)
	name, _ := f.GetCellValue(sheetName, nameCell)
	if name != "Ali Valiyev" {
		t.Fatalf("first data row name = %q", name)
	}
}
