package payslip

import (
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"hrportal/internal/domain/payroll"
)

var ErrMissingRecord = errors.New("payslip: record has no id")

// Render writes a one-page A4 payslip for rec to w.
func Render(w io.Writer, rec payroll.Record) error {
	if rec.ID == "" {
		return ErrMissingRecord
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+rec.Period(), true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rec.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", rec.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", rec.Period()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount string
	}{
		{"Basic salary", rec.BasicSalary.StringFixed(2)},
		{"Allowances", rec.Allowances.StringFixed(2)},
		{"Deductions", rec.Deductions.StringFixed(2)},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, line.amount, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, rec.NetSalary.StringFixed(2), "T", 1, "R", false, 0, "")

	if rec.PaidAt != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Ln(4)
		pdf.Cell(0, 6, "Paid on "+rec.PaidAt.Format("2006-01-02"))
	}

	return pdf.Output(w)
}
