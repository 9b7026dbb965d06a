package marks

import (
	"context"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

// The upload format is a plain comma-separated file. Values are split on
// commas with no quote handling; embedded delimiters are a known
// limitation of the accepted format, not an oversight to fix silently.

var ErrBadSchema = errors.New("csv must contain 'student_name' and 'marks' columns")

const (
	colStudentName = "student_name"
	colMarks       = "marks"
)

// Selection carries the form fields that apply to every row of a marks upload.
type Selection struct {
	ClassID   string `json:"class_id" validate:"required"`
	Board     string `json:"board" validate:"required"`
	ExamType  string `json:"exam_type" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
}

func (sel *Selection) Validate() error {
	return core.Validate.Struct(sel)
}

type csvRow struct {
	studentName string
	score       string
}

// parseCSV splits the raw text into header + rows, zipping each data line
// against the header positionally. A header missing a required column
// aborts the whole file with ErrBadSchema before any row is processed.
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
	nameIdx, marksIdx := indexOf(headers, colStudentName), indexOf(headers, colMarks)
	if nameIdx < 0 || marksIdx < 0 {
		return nil, ErrBadSchema
	}

	var rows []csvRow
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line)
		rows = append(rows, csvRow{
			studentName: valueAt(values, nameIdx),
			score:       valueAt(values, marksIdx),
		})
	}
	return rows, nil
}

// ImportCSV runs the marks upload pipeline: parse, then fold over rows
// sequentially, resolving each student name and upserting the mark. Every
// row lands in the ledger as success or error; a row's failure never stops
// the rows after it. Re-running the same file overwrites rather than
// duplicates any row that resolves to an existing mark.
func (svc *Service) ImportCSV(ctx context.Context, r io.Reader, sel Selection) (UploadResult, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return UploadResult{}, err
	}

	var res UploadResult
	for _, row := range rows {
		res.append(svc.importRow(ctx, row, sel))
	}
	return res, nil
}

func (svc *Service) importRow(ctx context.Context, row csvRow, sel Selection) UploadedRecord {
	rec := UploadedRecord{StudentName: row.studentName, Score: row.score, Status: StatusSuccess}
	fail := func(reason string) UploadedRecord {
		rec.Status = StatusError
		rec.Error = reason
		return rec
	}

	if row.studentName == "" || row.score == "" {
		return fail("missing required field")
	}

	ids, err := svc.students.FindIDsByName(ctx, row.studentName)
	if err != nil {
		return fail("looking up student: " + err.Error())
	}
	if len(ids) == 0 {
		return fail("student not found")
	}
	// TODO: require a unique match; taking the first of several partial
	// matches can credit the wrong student.
	studentID := ids[0]

	score, err := strconv.Atoi(row.score)
	if err != nil {
		return fail("marks must be a number")
	}

	if _, err = svc.Save(ctx, NewMark{
		StudentID: studentID,
		ClassID:   sel.ClassID,
		Board:     sel.Board,
		ExamType:  sel.ExamType,
		SubjectID: sel.SubjectID,
		Score:     score,
	}); err != nil {
		return fail(err.Error())
	}
	return rec
}

func (res *UploadResult) append(rec UploadedRecord) {
	if rec.Status == StatusSuccess {
		res.Succeeded++
	} else {
		res.Failed++
	}
	res.Ledger = append(res.Ledger, rec)
}

// SampleCSV is the downloadable template for marks uploads.
func SampleCSV() string {
	return strings.Join([]string{
		"student_name,marks",
		"John Doe,85",
		"Jane Smith,92",
		"Michael Johnson,78",
		"Emily Brown,95",
		"David Wilson,87",
	}, "\n")
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func indexOf(values []string, v string) int {
	for i, val := range values {
		if val == v {
			return i
		}
	}
	return -1
}

func valueAt(values []string, idx int) string {
	if idx < len(values) {
		return values[idx]
	}
	return ""
}
