package validation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() error = %v", err)
		}
		row := row
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf
}

var header = []interface{}{"Member No", "Surname", "Given Names", "Date Joined", "Financial"}

func countByType(issues []Issue) map[IssueType]int {
	counts := make(map[IssueType]int)
	for _, issue := range issues {
		counts[issue.IssueType]++
	}
	return counts
}

func TestIngestCleanList(t *testing.T) {
	ledger := NewMemoryLedger()
	buf := buildWorkbook(t, [][]interface{}{
		header,
		{"A100", "Nguyen", "Linh", "2019-04-01", "yes"},
		{"A101", "Okafor", "Chidi", "15/08/2020", "no"},
		{},
		{"A102", "Smith", "Jo", "2021-01-31", ""},
	})

	report, err := IngestMembershipList(context.Background(), ledger, "sub-1", buf, 3)
	if err != nil {
		t.Fatalf("IngestMembershipList() error = %v", err)
	}
	if report.Rows != 3 {
		t.Errorf("Rows = %d, want 3 (blank rows skipped)", report.Rows)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %+v, want none", report.Issues)
	}
}

func TestIngestReportsEveryIssueType(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	buf := buildWorkbook(t, [][]interface{}{
		header,
		{"A100", "Nguyen", "Linh", "2019-04-01", "yes"},
		{"a100", "Nguyen", "L", "2019-04-01", "yes"},
		{"A101", "", "Chidi", "last spring", "maybe"},
	})

	report, err := IngestMembershipList(ctx, ledger, "sub-1", buf, 5)
	if err != nil {
		t.Fatalf("IngestMembershipList() error = %v", err)
	}

	counts := countByType(report.Issues)
	want := map[IssueType]int{
		IssueDuplicate:         1,
		IssueMissingData:       1,
		IssueFormatError:       2,
		IssueInconsistentTotal: 1,
	}
	for issueType, n := range want {
		if counts[issueType] != n {
			t.Errorf("%s issues = %d, want %d", issueType, counts[issueType], n)
		}
	}

	stored, _ := ledger.ListIssues(ctx, "sub-1", Filter{})
	if len(stored) != len(report.Issues) {
		t.Errorf("ledger holds %d issues, report lists %d", len(stored), len(report.Issues))
	}
	for i, issue := range stored {
		if issue.ID != report.Issues[i].ID {
			t.Errorf("report issue %d id %s does not match ledger id %s", i, report.Issues[i].ID.Hex(), issue.ID.Hex())
		}
	}

	blocking, _ := ledger.HasBlockingErrors(ctx, "sub-1")
	if !blocking {
		t.Errorf("duplicate and missing data should block review")
	}

	for _, issue := range report.Issues {
		if issue.IssueType == IssueMissingData && (issue.AffectedItemRef != "row-4" || issue.FieldName != ColSurname) {
			t.Errorf("missing data issue = %+v, want row-4/surname", issue)
		}
		if issue.IssueType == IssueFormatError && issue.Severity != SeverityWarning {
			t.Errorf("format errors should be warnings: %+v", issue)
		}
	}
}

func TestIngestMissingColumn(t *testing.T) {
	ledger := NewMemoryLedger()
	buf := buildWorkbook(t, [][]interface{}{
		{"Member No", "Surname", "Given Names"},
		{"A100", "Nguyen", "Linh"},
	})

	report, err := IngestMembershipList(context.Background(), ledger, "sub-1", buf, 0)
	if err != nil {
		t.Fatalf("IngestMembershipList() error = %v", err)
	}
	if len(report.Issues) != 1 {
		t.Fatalf("Issues = %+v, want exactly the missing column", report.Issues)
	}
	if report.Issues[0].FieldName != ColDateJoined || !strings.Contains(report.Issues[0].Description, "header") {
		t.Errorf("unexpected issue %+v", report.Issues[0])
	}
}

func TestIngestUnreadableFile(t *testing.T) {
	ledger := NewMemoryLedger()
	_, err := IngestMembershipList(context.Background(), ledger, "sub-1", strings.NewReader("member_no,surname\n"), 0)
	if !errors.Is(err, ErrUnreadableFile) {
		t.Errorf("IngestMembershipList(csv) error = %v, want ErrUnreadableFile", err)
	}
}
