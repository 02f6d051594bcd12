package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_QuotedFieldRoundTrip(t *testing.T) {
	original := "a,\"b\"\"c\"\nd"
	quoted := `"` + strings.ReplaceAll(original, `"`, `""`) + `"`

	rows := Parse(quoted)
	require.Len(t, rows, 1, "embedded newline must not split the row")
	require.Len(t, rows[0], 1)
	assert.Equal(t, original, rows[0][0])
}

func TestParse_LineEndings(t *testing.T) {
	for name, text := range map[string]string{
		"lf":   "a,b\nc,d\n",
		"crlf": "a,b\r\nc,d\r\n",
		"cr":   "a,b\rc,d\r",
	} {
		t.Run(name, func(t *testing.T) {
			rows := Parse(text)
			assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)
		})
	}
}

func TestParse_NoTrailingNewline(t *testing.T) {
	rows := Parse("x,y\n1,2")
	assert.Equal(t, [][]string{{"x", "y"}, {"1", "2"}}, rows)
}

func TestParse_TrailingEmptyField(t *testing.T) {
	rows := Parse("a,b,\n")
	assert.Equal(t, [][]string{{"a", "b", ""}}, rows)
}

func TestParse_QuotedCRLFIsKeptVerbatim(t *testing.T) {
	rows := Parse("\"line1\r\nline2\",x\r\n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"line1\r\nline2", "x"}, rows[0])
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestRecords_SkipsBlankRowsAndDefaultsMissingCells(t *testing.T) {
	text := "post_title,sku,stock\nKenia,K1\n , ,\n\nBrasil,B2,5\n"

	header, records := Records(Parse(text))
	assert.Equal(t, []string{"post_title", "sku", "stock"}, header)
	require.Len(t, records, 2)

	assert.Equal(t, "Kenia", records[0].Get("post_title"))
	assert.Equal(t, "", records[0].Get("stock"), "missing trailing cell defaults to empty")
	assert.Equal(t, 2, records[0].Row())

	assert.Equal(t, "Brasil", records[1].Get("post_title"))
	assert.Equal(t, "5", records[1].Get("stock"))
	assert.Equal(t, 3, records[1].Row())
}

func TestRecords_HeaderOnly(t *testing.T) {
	header, records := Records(Parse("post_title,sku\n"))
	assert.Equal(t, []string{"post_title", "sku"}, header)
	assert.Empty(t, records)
}

func TestReadCSV_StripsByteOrderMark(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("\ufeffpost_title\nKenia\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kenia", records[0].Get("post_title"))
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	records, err := Read("export.CSV", strings.NewReader("post_title\nKenia\n"))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = Read("export.xlsx", strings.NewReader("not a workbook"))
	require.Error(t, err)
}
