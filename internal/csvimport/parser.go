// Package csvimport parses uploaded bank-statement CSVs into candidate
// transactions. Parsing is per-row: every invalid row is reported with its
// 1-based file line number so the whole error set is visible in one response.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Columns recognised in the header row. "date" and "tx_date" are synonyms.
const (
	colAccountID   = "account_id"
	colDate        = "date"
	colTxDate      = "tx_date"
	colDescription = "description"
	colAmount      = "amount"
	colType        = "type"
	colCategoryID  = "category_id"
	colFundID      = "fund_id"
)

var dateFormats = []string{"2006-01-02", "02/01/2006"}

// Row is one validated statement row ready to become a transaction with a
// single full allocation to FundID.
type Row struct {
	Line        int // 1-based file line (header is line 1)
	AccountID   string
	TxDate      time.Time
	Description string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	CategoryID  *string
	FundID      string
}

// RowError pairs a failing row's file line number with a human-readable message.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse reads the whole CSV and returns the valid rows plus every per-row
// error. A malformed file (unreadable CSV, bad header) is returned as err;
// row-level problems never are.
func Parse(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, nil, err
	}
	cr.FieldsPerRecord = len(header)

	var rows []Row
	var rowErrs []RowError
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		// Header occupies line 1, so data row i sits on line i+2.
		line := i + 2
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: err.Error()})
			continue
		}
		row, rerr := parseRow(rec, cols)
		if rerr != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: rerr.Error()})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

// mapHeader resolves column name -> index, folding the date synonyms.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == colTxDate {
			name = colDate
		}
		cols[name] = i
	}
	for _, required := range []string{colAccountID, colDate, colAmount, colType, colFundID} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (Row, error) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	row := Row{
		AccountID:   get(colAccountID),
		Description: get(colDescription),
		FundID:      get(colFundID),
	}
	if row.AccountID == "" {
		return Row{}, fmt.Errorf("account_id is required")
	}
	if row.FundID == "" {
		return Row{}, fmt.Errorf("fund_id is required")
	}

	rawDate := get(colDate)
	txDate, err := parseDate(rawDate)
	if err != nil {
		return Row{}, err
	}
	row.TxDate = txDate

	amount, err := ParseLooseAmount(get(colAmount))
	if err != nil {
		return Row{}, err
	}
	if !amount.IsPositive() {
		return Row{}, fmt.Errorf("amount must be positive, got %q", get(colAmount))
	}
	row.Amount = amount

	txType := domain.TransactionType(strings.ToLower(get(colType)))
	if !txType.IsValid() {
		return Row{}, fmt.Errorf("type must be credit or debit, got %q", get(colType))
	}
	row.Type = txType

	if cat := get(colCategoryID); cat != "" {
		row.CategoryID = &cat
	}

	return row, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// FundIDs returns the distinct funds referenced by a parsed batch, for the
// caller's scope check.
func FundIDs(rows []Row) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.FundID]; ok {
			continue
		}
		seen[row.FundID] = struct{}{}
		ids = append(ids, row.FundID)
	}
	return ids
}
