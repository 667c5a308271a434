package statement

import (
	"cloud.google.com/go/civil"
)

// Record is one normalized statement line ready to be appended to the
// exports table. The monetary fields are nil when the source cell could not
// be coerced to a number; the loader turns them into NULLs.
type Record struct {
	AccountName     string
	Date            civil.Date
	TransactionType string
	Description     string
	PaidOut         *float64
	PaidIn          *float64
	Balance         *float64
	DateUploaded    civil.Date
}
