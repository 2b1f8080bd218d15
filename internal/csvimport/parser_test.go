package csvimport_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/csvimport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `account_id,date,description,amount,type,category_id,fund_id
acc_1,2024-03-01,Transferencia recibida,"40.000,00",credit,cat_1,fund_a
acc_1,2024-03-02,Pago proveedor,"1.500,50",debit,,fund_b
acc_2,05/03/2024,Sin categoria,120,credit,,fund_a
`

func TestParse(t *testing.T) {
	rows, rowErrs, err := csvimport.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "acc_1", rows[0].AccountID)
	assert.Equal(t, "fund_a", rows[0].FundID)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("40000.00")))
	assert.Equal(t, domain.Credit, rows[0].Type)
	require.NotNil(t, rows[0].CategoryID)
	assert.Equal(t, "cat_1", *rows[0].CategoryID)

	assert.Equal(t, domain.Debit, rows[1].Type)
	assert.Nil(t, rows[1].CategoryID)

	// Day-first date format accepted.
	assert.True(t, rows[2].TxDate.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, rows[2].Line)
}

func TestParse_TxDateHeaderSynonym(t *testing.T) {
	csv := "account_id,tx_date,description,amount,type,category_id,fund_id\n" +
		"acc_1,2024-01-15,x,100,credit,,fund_a\n"
	rows, rowErrs, err := csvimport.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TxDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParse_RowErrorsCollected(t *testing.T) {
	csv := "account_id,date,description,amount,type,category_id,fund_id\n" +
		"acc_1,2024-03-01,ok,100,credit,,fund_a\n" +
		"acc_1,bad-date,broken,100,credit,,fund_a\n" +
		"acc_1,2024-03-03,bad amount,abc,credit,,fund_a\n" +
		",2024-03-04,no account,100,credit,,fund_a\n" +
		"acc_1,2024-03-05,bad type,100,transfer,,fund_a\n" +
		"acc_1,2024-03-06,no fund,100,debit,,\n"

	rows, rowErrs, err := csvimport.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.Len(t, rowErrs, 5)

	// Line numbers are 1-based and offset past the header row.
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Contains(t, rowErrs[0].Message, "date")
	assert.Equal(t, 4, rowErrs[1].Line)
	assert.Contains(t, rowErrs[1].Message, "amount")
	assert.Equal(t, 5, rowErrs[2].Line)
	assert.Contains(t, rowErrs[2].Message, "account_id")
	assert.Equal(t, 6, rowErrs[3].Line)
	assert.Contains(t, rowErrs[3].Message, "type")
	assert.Equal(t, 7, rowErrs[4].Line)
	assert.Contains(t, rowErrs[4].Message, "fund_id")
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	csv := "account_id,date,description,amount,type\nacc_1,2024-03-01,x,100,credit\n"
	_, _, err := csvimport.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fund_id")
}

func TestFundIDs(t *testing.T) {
	rows := []csvimport.Row{
		{FundID: "fund_a"},
		{FundID: "fund_b"},
		{FundID: "fund_a"},
	}
	assert.Equal(t, []string{"fund_a", "fund_b"}, csvimport.FundIDs(rows))
}
