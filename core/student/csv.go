package student

import (
	"context"
	"io"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
)

// Student uploads use the same naive comma-separated format as marks
// uploads: no quote handling, embedded delimiters unsupported. This is
// the accepted format, documented rather than fixed.

var ErrBadSchema = errors.New("csv must contain 'name', 'batch' and 'board' columns")

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var requiredColumns = []string{"name", "batch", "board"}

type (
	csvRow struct {
		name     string
		batch    string
		classID  string
		board    string
		email    string
		password string
	}

	// UploadedRecord is one imported row's outcome; kept only for the
	// duration of the upload.
	UploadedRecord struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	UploadResult struct {
		Succeeded int              `json:"successCount"`
		Failed    int              `json:"errorCount"`
		Ledger    []UploadedRecord `json:"records"`
	}
)

// parseCSV parses and pre-filters student rows: the header must carry
// every required column (whole-file ErrBadSchema otherwise), and rows
// missing a required field are dropped here, before any write.
func parseCSV(r io.Reader) ([]csvRow, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}

	lines := strings.Split(string(raw), "\n")
	if len(lines) == 0 {
		return nil, ErrBadSchema
	}
	headers := splitLine(lines[0])
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[h] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, ErrBadSchema
		}
	}

	at := func(values []string, col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(values) {
			return ""
		}
		return values[idx]
	}

	var rows []csvRow
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line)
		row := csvRow{
			name:     at(values, "name"),
			batch:    at(values, "batch"),
			classID:  at(values, "class_id"),
			board:    at(values, "board"),
			email:    at(values, "email"),
			password: at(values, "password"),
		}
		if row.name == "" || row.batch == "" || row.board == "" {
			continue // incomplete rows are excluded, not error-ledgered
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportCSV runs the student upload pipeline. Rows are written
// sequentially and independently: one row's failure lands in the ledger
// and never blocks the rows after it.
func (svc *Service) ImportCSV(ctx context.Context, r io.Reader) (UploadResult, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return UploadResult{}, err
	}

	var res UploadResult
	for _, row := range rows {
		rec := UploadedRecord{Name: row.name, Status: StatusSuccess}
		if _, err := svc.Create(ctx, NewStudent{
			Name:     row.name,
			Batch:    row.batch,
			ClassID:  row.classID,
			Board:    row.board,
			Email:    row.email,
			Password: row.password,
		}); err != nil {
			rec.Status = StatusError
			rec.Error = err.Error()
			res.Failed++
		} else {
			res.Succeeded++
		}
		res.Ledger = append(res.Ledger, rec)
	}
	return res, nil
}

// SampleCSV is the downloadable template for student uploads.
func SampleCSV() string {
	return strings.Join([]string{
		"name,batch,class_id,board,email,password",
		"John Doe,2023,Class A,CBSE,john.doe@example.com,Pass!word123",
		"Jane Smith,2023,Class B,ICSE,jane.smith@example.com,Pass!word456",
		"Alex Johnson,2023,Class A,CBSE,alex.johnson@example.com,Pass!word789",
	}, "\n")
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
