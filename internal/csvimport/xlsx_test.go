package csvimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSX_FirstSheetRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"post_title", "post_name", "regular_price"},
		{"Kenia AA", "kenia-aa", "14,90"},
		{"", "", ""},
		{"Brasil", "brasil", "9.5"},
	})

	records, err := ReadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Kenia AA", records[0].Get("post_title"))
	assert.Equal(t, 2, records[0].Row())
	assert.Equal(t, "brasil", records[1].Get("post_name"))

	mapped := MapRecord(records[0])
	require.NotNil(t, mapped.RegularPrice)
	assert.Equal(t, "14.9", mapped.RegularPrice.String())
}

func TestReadXLSX_InvalidWorkbook(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")
}
