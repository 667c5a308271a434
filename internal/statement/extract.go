package statement

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const (
	// skipLeadingLines is how many lines of summary boilerplate sit above
	// the CSV header in a Nationwide export. Line 1 carries the account
	// name, lines 2-4 are balance summary noise.
	skipLeadingLines = 4

	// accountNameField is the position of the account name in the line-1
	// summary.
	accountNameField = 1

	// dateLayout is the statement date format, e.g. "05 Jan 2024".
	dateLayout = "02 Jan 2006"
)

// requiredColumns are the canonical column names every export must carry
// after header normalization.
var requiredColumns = []string{
	"date",
	"transaction_type",
	"description",
	"paid_out",
	"paid_in",
	"balance",
}

// ExtractFile parses one source file into a normalized record set.
func ExtractFile(ctx context.Context, path string, uploaded civil.Date) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ExtractFile: opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Extract(ctx, f, uploaded)
	if err != nil {
		return nil, fmt.Errorf("ExtractFile: %s: %w", path, err)
	}
	return records, nil
}

// Extract reads a statement export: the account name from the summary line,
// then the CSV body after the skipped boilerplate. Every row must parse;
// a single bad date fails the whole file. A file with no rows after the
// header yields an empty record set and no error.
func Extract(ctx context.Context, r io.Reader, uploaded civil.Date) ([]*Record, error) {
	br := bufio.NewReader(r)

	summary, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("Extract: reading summary line: %w", err)
	}

	accountName, err := AccountNameFromSummary(summary)
	if err != nil {
		return nil, err
	}

	// The CSV header sits on line skipLeadingLines+1.
	for i := 1; i < skipLeadingLines; i++ {
		if _, err := br.ReadString('\n'); err == io.EOF {
			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("Extract: skipping line %d: %w", i+1, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Extract: reading header: %w", err)
	}

	columns := headerMap(header)
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("Extract: missing column %q", name)
		}
	}

	var records []*Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Extract: reading row: %w", err)
		}

		rec, err := recordFromRow(ctx, row, columns, accountName, uploaded)
		if err != nil {
			return nil, fmt.Errorf("Extract: row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// AccountNameFromSummary extracts the account name from the first line of a
// source file: the second comma-separated field with surrounding quote
// characters removed.
func AccountNameFromSummary(line string) (string, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(fields) < 2 {
		return "", fmt.Errorf("AccountNameFromSummary: summary line has %d field(s), want at least 2", len(fields))
	}
	return strings.Trim(fields[accountNameField], `"`), nil
}

// headerMap maps each column, renamed to its canonical lowercase underscore
// form, to its position in the row.
func headerMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		canonical := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
		m[canonical] = i
	}
	return m
}

func recordFromRow(ctx context.Context, row []string, columns map[string]int, accountName string, uploaded civil.Date) (*Record, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	rawDate := field("date")
	t, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	return &Record{
		AccountName:     accountName,
		Date:            civil.DateOf(t),
		TransactionType: field("transaction_type"),
		Description:     field("description"),
		PaidOut:         NormalizeCurrency(ctx, field("paid_out")),
		PaidIn:          NormalizeCurrency(ctx, field("paid_in")),
		Balance:         NormalizeCurrency(ctx, field("balance")),
		DateUploaded:    uploaded,
	}, nil
}
