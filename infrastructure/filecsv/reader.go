package filecsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"leadbridge/domain/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ContactSheet is a validated upload: the records in file order and the non-required
// columns, in header order, that travel with them into the report.
type ContactSheet struct {
	Records      []model.ContactRecord
	ExtraColumns []string
}

// ReadContacts parses an uploaded lead file. The whole file is rejected with a
// *model.ValidationError when it is empty, malformed, lacks a required column or holds
// more than maxRows data rows (maxRows <= 0 means no limit). A row with more cells than
// the header is malformed; missing trailing cells read as "". Cell values are not checked.
func ReadContacts(r io.Reader, section string, maxRows int) (*ContactSheet, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.ValidationError{Section: section, Message: "CSV file is empty"}
	}
	if err != nil {
		return nil, &model.ValidationError{Section: section, Message: fmt.Sprintf("invalid CSV header: %v", err)}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := index[name]; !dup && name != "" {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, model.NewMissingColumnsError(section, missing)
	}

	sheet := &ContactSheet{}
	required := make(map[string]struct{}, len(model.RequiredColumns))
	for _, col := range model.RequiredColumns {
		required[col] = struct{}{}
	}
	for i, name := range header {
		if _, ok := required[name]; ok || name == "" || index[name] != i {
			continue
		}
		sheet.ExtraColumns = append(sheet.ExtraColumns, name)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.ValidationError{Section: section, Message: fmt.Sprintf("invalid CSV: %v", err)}
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &model.ValidationError{
				Section: section,
				Message: fmt.Sprintf("invalid CSV: line %d has %d fields, header has %d", line, len(row), len(header)),
			}
		}
		// Short rows read as blank trailing cells.
		for len(row) < len(header) {
			row = append(row, "")
		}
		if maxRows > 0 && len(sheet.Records) >= maxRows {
			return nil, &model.ValidationError{
				Section: section,
				Message: fmt.Sprintf("CSV has more than %d rows", maxRows),
			}
		}

		record := model.ContactRecord{
			Firstname: row[index["Firstname"]],
			Lastname:  row[index["Lastname"]],
			Mobile:    row[index["Mobile"]],
			Email:     row[index["Email"]],
		}
		if len(sheet.ExtraColumns) > 0 {
			record.Extra = make(map[string]string, len(sheet.ExtraColumns))
			for _, col := range sheet.ExtraColumns {
				record.Extra[col] = row[index[col]]
			}
		}
		sheet.Records = append(sheet.Records, record)
	}

	return sheet, nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
