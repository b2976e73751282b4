// Package xlsx reads and writes the employee spreadsheet layout:
//
//	A Documento  B Nombres  C Apellidos  D FechaNacimiento  E Direccion
//	F Telefono   G Email    H Cargo      I Salario          J FechaIngreso
//	K Estado     L NivelEducativo        M PerfilProfesional
//	N Departamento
//
// Column D is accepted on import and left blank on export.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

const (
	columnCount = 14
	sheetName   = "Empleados"
	dateLayout  = "2006-01-02"
)

const (
	colDocument = iota
	colFirstName
	colLastName
	colBirthDate
	colAddress
	colPhone
	colEmail
	colPosition
	colSalary
	colHireDate
	colStatus
	colEducation
	colProfile
	colDepartment
)

var header = []any{
	"Documento", "Nombres", "Apellidos", "FechaNacimiento", "Direccion", "Telefono", "Email",
	"Cargo", "Salario", "FechaIngreso", "Estado", "NivelEducativo", "PerfilProfesional", "Departamento",
}

var hireDateLayouts = []string{dateLayout, "02/01/2006", "01/02/2006", "2006-01-02 15:04:05"}

type Codec struct {
	now func() time.Time
}

func NewCodec() *Codec {
	return &Codec{now: func() time.Time { return time.Now().UTC() }}
}

func (c *Codec) ReadEmployees(ctx context.Context, r io.Reader) ([]domain.EmployeeRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "open spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "open spreadsheet", errors.New("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || usedCells(rows[0]) < columnCount {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate spreadsheet header",
			fmt.Errorf("expected at least %d columns", columnCount))
	}

	today := c.now().Truncate(24 * time.Hour)
	out := make([]domain.EmployeeRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell := func(col int) string {
			if col < len(cells) {
				return strings.TrimSpace(cells[col])
			}
			return ""
		}
		document := cell(colDocument)
		if document == "" {
			continue
		}
		out = append(out, domain.EmployeeRow{
			Line:           i + 2,
			Document:       document,
			FirstName:      cell(colFirstName),
			LastName:       cell(colLastName),
			Address:        cell(colAddress),
			Phone:          cell(colPhone),
			Email:          cell(colEmail),
			Position:       cell(colPosition),
			Salary:         parseSalary(cell(colSalary)),
			HireDate:       parseHireDate(cell(colHireDate), today),
			Status:         domain.ParseEmployeeStatus(cell(colStatus)),
			EducationLevel: domain.ParseEducationLevel(cell(colEducation)),
			Profile:        cell(colProfile),
			DepartmentName: cell(colDepartment),
		})
	}
	return out, nil
}

func (c *Codec) WriteEmployees(ctx context.Context, w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.Document, e.FirstName, e.LastName, "", e.Address, e.Phone, e.Email,
			e.Position, e.Salary, e.HireDate.Format(dateLayout), string(e.Status),
			string(e.EducationLevel), e.Profile, e.DepartmentName,
		}
		if err := sw.SetRow(cellName, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func usedCells(cells []string) int {
	n := 0
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func parseSalary(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseHireDate accepts text dates and Excel serial numbers.
func parseHireDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	for _, layout := range hireDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.UTC().Truncate(24 * time.Hour)
		}
	}
	return fallback
}
