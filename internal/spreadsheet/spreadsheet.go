// Package spreadsheet decodes the first sheet of an uploaded report into rows keyed by header name.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedFormat is returned when a file is neither a workbook nor delimited text.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Row maps header names to raw cell text. Blank cells are absent.
type Row map[string]string

// Sheet is a decoded table: its header row and the non-blank data rows below it.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// HasHeader reports whether name appears verbatim in the header row.
func (s *Sheet) HasHeader(name string) bool {
	for _, h := range s.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Decoder turns a file body into a Sheet.
type Decoder interface {
	Decode(r io.Reader) (*Sheet, error)
}

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv"
	mimeText = "text/plain"
	mimeZip  = "application/zip"
)

// DecoderFor picks a decoder from the file extension, falling back to sniffing the content.
func DecoderFor(filename string, head []byte) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return XLSXDecoder{}, nil
	case ".csv":
		return CSVDecoder{}, nil
	}

	mtype := mimetype.Detect(head)
	switch {
	case mtype.Is(mimeXLSX), mtype.Is(mimeZip):
		return XLSXDecoder{}, nil
	case mtype.Is(mimeCSV), mtype.Is(mimeText):
		return CSVDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}
}

// Decode decodes data using the decoder chosen for filename.
func Decode(filename string, data []byte) (*Sheet, error) {
	dec, err := DecoderFor(filename, data)
	if err != nil {
		return nil, err
	}
	return dec.Decode(bytes.NewReader(data))
}

// buildSheet turns raw records into a Sheet. The first record is the header row;
// columns with a blank header and fully blank rows are dropped.
func buildSheet(name string, records [][]string) *Sheet {
	sheet := &Sheet{Name: name}
	if len(records) == 0 {
		return sheet
	}

	header := records[0]
	sheet.Headers = make([]string, 0, len(header))
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			sheet.Headers = append(sheet.Headers, h)
		}
	}

	for _, record := range records[1:] {
		row := make(Row)
		for i, cell := range record {
			if i >= len(header) || strings.TrimSpace(header[i]) == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}
