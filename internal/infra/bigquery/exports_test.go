package bigquery

import (
	"encoding/json"
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/jhutton/bank-exports/internal/statement"
)

var testTable = TableRef{Project: "my-project", Dataset: "personal_finance", Table: "nationwide_exports"}

func TestTableRefIdentifier(t *testing.T) {
	want := "`my-project.personal_finance.nationwide_exports`"
	if got := testTable.Identifier(); got != want {
		t.Errorf("Identifier() = %q, want %q", got, want)
	}
	if got := testTable.String(); got != "my-project.personal_finance.nationwide_exports" {
		t.Errorf("String() = %q", got)
	}
}

func TestCountQuery(t *testing.T) {
	want := "SELECT COUNT(*) AS total FROM `my-project.personal_finance.nationwide_exports`"
	if got := countQuery(testTable); got != want {
		t.Errorf("countQuery() = %q, want %q", got, want)
	}
}

func TestDedupQuery(t *testing.T) {
	got := dedupQuery(testTable)
	if !strings.HasPrefix(got, "CREATE OR REPLACE TABLE `my-project.personal_finance.nationwide_exports` AS") {
		t.Errorf("dedupQuery() = %q, want CREATE OR REPLACE on the exports table", got)
	}
	if !strings.Contains(got, "SELECT DISTINCT * FROM `my-project.personal_finance.nationwide_exports`") {
		t.Errorf("dedupQuery() = %q, want a distinct-row projection of the same table", got)
	}
}

func TestRowFromRecord(t *testing.T) {
	paidOut := 50.0
	rec := &statement.Record{
		AccountName:     "My Account",
		Date:            civil.Date{Year: 2024, Month: 1, Day: 5},
		TransactionType: "Direct Debit",
		Description:     "ELECTRIC CO",
		PaidOut:         &paidOut,
		PaidIn:          nil,
		Balance:         nil,
		DateUploaded:    civil.Date{Year: 2024, Month: 2, Day: 1},
	}

	row := RowFromRecord(rec)

	if row.AccountName != "My Account" {
		t.Errorf("AccountName = %q", row.AccountName)
	}
	if !row.PaidOut.Valid || row.PaidOut.Float64 != 50.0 {
		t.Errorf("PaidOut = %+v, want valid 50", row.PaidOut)
	}
	if row.PaidIn.Valid {
		t.Errorf("PaidIn = %+v, want NULL", row.PaidIn)
	}
	if row.Balance.Valid {
		t.Errorf("Balance = %+v, want NULL", row.Balance)
	}
	if row.Date != rec.Date || row.DateUploaded != rec.DateUploaded {
		t.Errorf("dates not carried over: %v / %v", row.Date, row.DateUploaded)
	}
}

// The load job consumes these rows as newline-delimited JSON, so the wire
// shape matters: dates as YYYY-MM-DD strings, missing amounts as nulls.
func TestExportRowJSON(t *testing.T) {
	paidOut := 50.0
	row := RowFromRecord(&statement.Record{
		AccountName:     "My Account",
		Date:            civil.Date{Year: 2024, Month: 1, Day: 5},
		TransactionType: "Direct Debit",
		Description:     "ELECTRIC CO",
		PaidOut:         &paidOut,
		DateUploaded:    civil.Date{Year: 2024, Month: 2, Day: 1},
	})

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	for _, want := range []string{
		`"date":"2024-01-05"`,
		`"date_uploaded":"2024-02-01"`,
		`"paid_out":50`,
		`"paid_in":null`,
		`"balance":null`,
		`"account_name":"My Account"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s missing %s", got, want)
		}
	}
}
