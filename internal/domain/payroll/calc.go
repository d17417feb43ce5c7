package payroll

import "github.com/shopspring/decimal"

var monthsPerYear = decimal.NewFromInt(12)

// ComputeNet returns basic + allowances - deductions.
func ComputeNet(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions)
}

// MonthlyBasic derives a monthly basic salary from an annual figure.
func MonthlyBasic(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear).Round(2)
}
