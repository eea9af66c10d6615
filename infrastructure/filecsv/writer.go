package filecsv

import (
	"bytes"
	"encoding/csv"
	"io"

	"leadbridge/domain/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// OutcomeHeader is the report header: required columns, pass-through columns, then the result.
func OutcomeHeader(extraColumns []string) []string {
	header := make([]string, 0, len(model.RequiredColumns)+len(extraColumns)+2)
	header = append(header, model.RequiredColumns...)
	header = append(header, extraColumns...)
	return append(header, "Status", "Message")
}

func WriteOutcomes(w io.Writer, extraColumns []string, outcomes []model.OutcomeRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(OutcomeHeader(extraColumns)); err != nil {
		return err
	}
	for _, o := range outcomes {
		row := []string{o.Firstname, o.Lastname, o.Mobile, o.Email}
		for _, col := range extraColumns {
			row = append(row, o.Extra[col])
		}
		row = append(row, o.Status, o.Message)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportOutcomes renders the full submission log of a batch.
func ExportOutcomes(batch *model.Batch) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteOutcomes(&buf, batch.ExtraColumns, batch.Outcomes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFailures renders only the failed rows, same shape as ExportOutcomes.
func ExportFailures(batch *model.Batch) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteOutcomes(&buf, batch.ExtraColumns, batch.Failures()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ExportErrorLog(entries []model.ErrorLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"Timestamp", "Section", "Error"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Timestamp.Format(timestampLayout), e.Section, e.Error}); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
