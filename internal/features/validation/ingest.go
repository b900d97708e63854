package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrUnreadableFile = errors.New("membership list could not be read")

// Membership list columns. The first four are required on every row.
const (
	ColMemberNo   = "member_no"
	ColSurname    = "surname"
	ColGivenNames = "given_names"
	ColDateJoined = "date_joined"
	ColFinancial  = "financial"
)

var requiredColumns = []string{ColMemberNo, ColSurname, ColGivenNames, ColDateJoined}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// IngestReport summarises one membership list upload
type IngestReport struct {
	Rows   int     `json:"rows"`
	Issues []Issue `json:"issues"`
}

// IngestMembershipList reads the first sheet of an xlsx membership list and
// records every problem it finds in the ledger. declaredTotal <= 0 means the
// submitter did not declare a member count.
func IngestMembershipList(ctx context.Context, ledger Ledger, submissionID string, file io.Reader, declaredTotal int) (*IngestReport, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found", ErrUnreadableFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrUnreadableFile, sheets[0])
	}

	report := &IngestReport{Issues: []Issue{}}
	record := func(issue Issue) error {
		id, err := ledger.AddIssue(ctx, submissionID, issue)
		if err != nil {
			return err
		}
		issue.SubmissionRef = submissionID
		issue.ID, _ = primitive.ObjectIDFromHex(id)
		report.Issues = append(report.Issues, issue)
		return nil
	}

	columns := indexHeader(rows[0])
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			if err := record(Issue{
				FieldName:   col,
				IssueType:   IssueMissingData,
				Severity:    SeverityError,
				Description: fmt.Sprintf("column %q is missing from the header row", col),
			}); err != nil {
				return nil, err
			}
		}
	}

	seen := make(map[string]int)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		report.Rows++
		ref := fmt.Sprintf("row-%d", rowNum)
		cell := func(col string) string {
			idx, ok := columns[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		for _, col := range requiredColumns {
			if _, ok := columns[col]; !ok {
				continue
			}
			if cell(col) == "" {
				if err := record(Issue{
					AffectedItemRef: ref,
					FieldName:       col,
					IssueType:       IssueMissingData,
					Severity:        SeverityError,
					Description:     fmt.Sprintf("%s is empty on row %d", col, rowNum),
				}); err != nil {
					return nil, err
				}
			}
		}

		if memberNo := strings.ToUpper(cell(ColMemberNo)); memberNo != "" {
			if first, dup := seen[memberNo]; dup {
				if err := record(Issue{
					AffectedItemRef: ref,
					FieldName:       ColMemberNo,
					IssueType:       IssueDuplicate,
					Severity:        SeverityError,
					Description:     fmt.Sprintf("member number %s on row %d repeats row %d", memberNo, rowNum, first),
				}); err != nil {
					return nil, err
				}
			} else {
				seen[memberNo] = rowNum
			}
		}

		if joined := cell(ColDateJoined); joined != "" && !validDate(joined) {
			if err := record(Issue{
				AffectedItemRef: ref,
				FieldName:       ColDateJoined,
				IssueType:       IssueFormatError,
				Severity:        SeverityWarning,
				Description:     fmt.Sprintf("date joined %q on row %d is not YYYY-MM-DD or DD/MM/YYYY", joined, rowNum),
			}); err != nil {
				return nil, err
			}
		}

		if financial := cell(ColFinancial); financial != "" && !validFlag(financial) {
			if err := record(Issue{
				AffectedItemRef: ref,
				FieldName:       ColFinancial,
				IssueType:       IssueFormatError,
				Severity:        SeverityWarning,
				Description:     fmt.Sprintf("financial flag %q on row %d is not yes/no", financial, rowNum),
			}); err != nil {
				return nil, err
			}
		}
	}

	if declaredTotal > 0 && declaredTotal != report.Rows {
		if err := record(Issue{
			IssueType:   IssueInconsistentTotal,
			Severity:    SeverityError,
			Description: fmt.Sprintf("declared membership total %d does not match %d listed members", declaredTotal, report.Rows),
		}); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		if _, dup := columns[key]; !dup && key != "" {
			columns[key] = i
		}
	}
	return columns
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func validDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func validFlag(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "no", "y", "n", "true", "false":
		return true
	}
	return false
}
