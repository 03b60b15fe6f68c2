package importing

import (
	"fmt"
	"strings"
)

// Report is the user-facing outcome of one import batch. Diagnostics are
// plain lines, each prefixed with its 1-based spreadsheet row where one
// applies (the header row is row 1, so the first data row is row 2).
type Report struct {
	Added       int      `json:"added"`
	Skipped     int      `json:"skipped"`
	Diagnostics []string `json:"diagnostics"`
}

// Result carries the accepted candidates, in file order, plus the report.
type Result struct {
	Accepted []Fields
	Report   Report
}

// headerRowOffset converts a 0-based data-row index to the spreadsheet row
// number users see.
func rowNumber(index int) int {
	return index + 2
}

// Reconcile runs extraction, validation and duplicate resolution over every
// row, in file order. Each candidate is checked against the existing store
// first, then against earlier accepted candidates from the same batch —
// never against skipped ones. The first occurrence of a duplicate pair is
// the one kept.
func Reconcile(rows []Row, existing []Fields) Result {
	result := Result{
		Accepted: []Fields{},
		Report:   Report{Diagnostics: []string{}},
	}

	for i, row := range rows {
		// Blank rows stay in the slice so later rows keep their sheet
		// numbering; they are not clients and produce nothing.
		if isBlank(row) {
			continue
		}
		number := rowNumber(i)

		extraction := Extract(row, number)
		fields, validationDiags := ValidateFields(extraction.Fields)

		for _, d := range extraction.Diagnostics {
			result.Report.Diagnostics = append(result.Report.Diagnostics, prefixRow(number, d))
		}
		for _, d := range validationDiags {
			result.Report.Diagnostics = append(result.Report.Diagnostics, prefixRow(number, d))
		}

		if dup, matched := findDuplicate(fields, existing, result.Accepted); dup {
			result.Report.Skipped++
			result.Report.Diagnostics = append(result.Report.Diagnostics, prefixRow(number,
				fmt.Sprintf("Skipped '%s': duplicate (matched on: %s)",
					displayName(fields), MatchedFieldsLabel(matched))))
			continue
		}

		result.Accepted = append(result.Accepted, fields)
		result.Report.Added++
	}

	return result
}

func findDuplicate(candidate Fields, existing, accepted []Fields) (bool, []string) {
	for _, other := range existing {
		if dup, matched := MatchDuplicate(candidate, other); dup {
			return true, matched
		}
	}
	for _, other := range accepted {
		if dup, matched := MatchDuplicate(candidate, other); dup {
			return true, matched
		}
	}
	return false, nil
}

func isBlank(row Row) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func prefixRow(number int, diagnostic string) string {
	return fmt.Sprintf("Row %d: %s", number, diagnostic)
}

func displayName(f Fields) string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}
