package spreadsheet

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/praxishq/praxis/modules/clients/importing"
)

var ErrUnreadableFile = errors.New("unable to read spreadsheet")

// ReadRows parses an uploaded tabular file into header-keyed rows. The first
// sheet's first row is taken as the header row. Blank data rows are kept so
// each row's slice index keeps tracking its sheet position; downstream
// processing skips them. CSV files are detected by extension, everything else
// goes through excelize.
func ReadRows(r io.Reader, filename string) ([]importing.Row, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return readCSV(r)
	}
	return readWorkbook(r)
}

func readWorkbook(r io.Reader) ([]importing.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Wrap(ErrUnreadableFile, "workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}

	return toRows(rows), nil
}

func readCSV(r io.Reader) ([]importing.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	return toRows(records), nil
}

func toRows(records [][]string) []importing.Row {
	if len(records) == 0 {
		return []importing.Row{}
	}

	headers := records[0]
	out := make([]importing.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := importing.Row{}
		for i, header := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[strings.TrimSpace(header)] = value
		}
		out = append(out, row)
	}
	return out
}
