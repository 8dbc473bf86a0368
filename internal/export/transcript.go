// Package export renders the academic record as an Excel workbook.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/academic-tracker/internal/analytics"
	"github.com/jonathan/academic-tracker/internal/types"
)

// SheetName is the single sheet in the exported workbook.
const SheetName = "Transcript"

// ErrGenerateFailed indicates the workbook could not be produced
var ErrGenerateFailed = errors.New("failed to generate transcript workbook")

// Transcript writes one block per semester (a header row followed by its courses) and a
// closing summary block. It returns the workbook bytes and a suggested filename.
func Transcript(semesters []types.Semester, st analytics.Standing, now time.Time) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 32)
	_ = f.SetColWidth(SheetName, "B", "B", 22)
	_ = f.SetColWidth(SheetName, "C", "D", 12)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	semesterStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	numberStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	row := 1
	_ = f.SetCellValue(SheetName, cell("A", row), "Academic Transcript")
	_ = f.SetCellStyle(SheetName, cell("A", row), cell("A", row), titleStyle)
	_ = f.SetCellValue(SheetName, cell("B", row), "Generated "+now.UTC().Format("2006-01-02"))
	row += 2

	for _, s := range semesters {
		_ = f.SetCellValue(SheetName, cell("A", row), s.Name)
		_ = f.SetCellValue(SheetName, cell("B", row), s.Date)
		_ = f.SetCellValue(SheetName, cell("C", row), s.GPA)
		_ = f.SetCellValue(SheetName, cell("D", row), s.TotalCredits)
		_ = f.SetCellStyle(SheetName, cell("A", row), cell("D", row), semesterStyle)
		_ = f.SetCellStyle(SheetName, cell("C", row), cell("C", row), numberStyle)
		row++

		_ = f.SetSheetRow(SheetName, cell("A", row), &[]any{"Course", "Grade", "Credits", "Grade Point"})
		_ = f.SetCellStyle(SheetName, cell("A", row), cell("D", row), headerStyle)
		row++

		for _, c := range s.Courses {
			_ = f.SetSheetRow(SheetName, cell("A", row), &[]any{c.Name, c.Grade, c.Credits, c.GradePoint})
			row++
		}
		row++
	}

	_ = f.SetCellValue(SheetName, cell("A", row), "Summary")
	_ = f.SetCellStyle(SheetName, cell("A", row), cell("D", row), headerStyle)
	row++
	summary := [][]any{
		{"CGPA", st.CGPA},
		{"Total Credits", st.TotalCredits},
		{"Semesters", st.SemesterCount},
		{"Class", st.Class.Label},
		{"Grading Scale", fmt.Sprintf("%.1f", st.Scale)},
	}
	for _, line := range summary {
		_ = f.SetSheetRow(SheetName, cell("A", row), &line)
		row++
	}
	_ = f.SetCellStyle(SheetName, cell("B", row-len(summary)), cell("B", row-len(summary)), numberStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	filename := fmt.Sprintf("transcript_%s.xlsx", now.UTC().Format("2006-01-02"))
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
