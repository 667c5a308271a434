package bigquery

import (
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/jhutton/bank-exports/internal/statement"
)

// TableRef identifies the exports table by its three-part name.
type TableRef struct {
	Project string
	Dataset string
	Table   string
}

// Identifier returns the backtick-quoted fully qualified table name for use
// in query text.
func (t TableRef) Identifier() string {
	return fmt.Sprintf("`%s.%s.%s`", t.Project, t.Dataset, t.Table)
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.Project, t.Dataset, t.Table)
}

// ExportRow represents one statement line in the exports table. The json
// tags drive the newline-delimited JSON the load job consumes; they must
// stay in sync with ExportsSchema.
type ExportRow struct {
	AccountName     string               `bigquery:"account_name" json:"account_name"`
	Date            civil.Date           `bigquery:"date" json:"date"`
	TransactionType string               `bigquery:"transaction_type" json:"transaction_type"`
	Description     string               `bigquery:"description" json:"description"`
	PaidOut         bigquery.NullFloat64 `bigquery:"paid_out" json:"paid_out"`
	PaidIn          bigquery.NullFloat64 `bigquery:"paid_in" json:"paid_in"`
	Balance         bigquery.NullFloat64 `bigquery:"balance" json:"balance"`
	DateUploaded    civil.Date           `bigquery:"date_uploaded" json:"date_uploaded"`
}

// ExportsSchema is the fixed eight-column schema of the exports table.
var ExportsSchema = bigquery.Schema{
	{Name: "account_name", Type: bigquery.StringFieldType},
	{Name: "date", Type: bigquery.DateFieldType},
	{Name: "transaction_type", Type: bigquery.StringFieldType},
	{Name: "description", Type: bigquery.StringFieldType},
	{Name: "paid_out", Type: bigquery.FloatFieldType},
	{Name: "paid_in", Type: bigquery.FloatFieldType},
	{Name: "balance", Type: bigquery.FloatFieldType},
	{Name: "date_uploaded", Type: bigquery.DateFieldType},
}

// RowFromRecord maps a normalized statement record onto the table schema.
func RowFromRecord(rec *statement.Record) *ExportRow {
	return &ExportRow{
		AccountName:     rec.AccountName,
		Date:            rec.Date,
		TransactionType: rec.TransactionType,
		Description:     rec.Description,
		PaidOut:         nullFloat(rec.PaidOut),
		PaidIn:          nullFloat(rec.PaidIn),
		Balance:         nullFloat(rec.Balance),
		DateUploaded:    rec.DateUploaded,
	}
}

func nullFloat(v *float64) bigquery.NullFloat64 {
	if v == nil {
		return bigquery.NullFloat64{}
	}
	return bigquery.NullFloat64{Float64: *v, Valid: true}
}
