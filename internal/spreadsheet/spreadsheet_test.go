package spreadsheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXDecoder(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"ESTATUS", "VALOR DE COMPRA EN PRODUCTOS", "PRECIO FLETE"},
		{"ENTREGADO", 100, 10.5},
		{},
		{"RECHAZADO", nil, 12},
	})

	sheet, err := XLSXDecoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"ESTATUS", "VALOR DE COMPRA EN PRODUCTOS", "PRECIO FLETE"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ENTREGADO", sheet.Rows[0]["ESTATUS"])
	assert.Equal(t, "100", sheet.Rows[0]["VALOR DE COMPRA EN PRODUCTOS"])
	assert.Equal(t, "10.5", sheet.Rows[0]["PRECIO FLETE"])

	_, ok := sheet.Rows[1]["VALOR DE COMPRA EN PRODUCTOS"]
	assert.False(t, ok)
}

func TestXLSXDecoder_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{{"ESTATUS"}})

	sheet, err := XLSXDecoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, sheet.HasHeader("ESTATUS"))
	assert.Empty(t, sheet.Rows)
}

func TestXLSXDecoder_Garbage(t *testing.T) {
	_, err := XLSXDecoder{}.Decode(bytes.NewReader([]byte("definitely not a zip")))
	assert.Error(t, err)
}

func TestCSVDecoder(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"comma", "ESTATUS,PRECIO FLETE\nENTREGADO,10\n,\nNOVEDAD,7\n"},
		{"semicolon with bom", "\xEF\xBB\xBFESTATUS;PRECIO FLETE\r\nENTREGADO;10\r\n;\r\nNOVEDAD;7\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := CSVDecoder{}.Decode(bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)

			assert.Equal(t, []string{"ESTATUS", "PRECIO FLETE"}, sheet.Headers)
			require.Len(t, sheet.Rows, 2)
			assert.Equal(t, "ENTREGADO", sheet.Rows[0]["ESTATUS"])
			assert.Equal(t, "7", sheet.Rows[1]["PRECIO FLETE"])
		})
	}
}

func TestDecoderFor(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{{"ESTATUS"}})

	dec, err := DecoderFor("report.XLSX", nil)
	require.NoError(t, err)
	assert.IsType(t, XLSXDecoder{}, dec)

	dec, err = DecoderFor("report.csv", nil)
	require.NoError(t, err)
	assert.IsType(t, CSVDecoder{}, dec)

	dec, err = DecoderFor("upload", workbook)
	require.NoError(t, err)
	assert.IsType(t, XLSXDecoder{}, dec)

	dec, err = DecoderFor("upload", []byte("ESTATUS,PRECIO FLETE\nENTREGADO,1\n"))
	require.NoError(t, err)
	assert.IsType(t, CSVDecoder{}, dec)

	_, err = DecoderFor("report.xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecode(t *testing.T) {
	sheet, err := Decode("orders.csv", []byte("ESTATUS\nENTREGADO\n"))
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 1)
}
