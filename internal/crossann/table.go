package crossann

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
)

// Table is an in-memory copy of one delimited input file. It's immutable
// after load: rows keep their file order and the header keeps its column order.
type Table struct {
	// Path of the file the table was read from
	Path string

	// the identifier column's name (defaulted to the first column)
	IDCol string

	// the sequence column's name
	SeqCol string

	header []string
	index  map[string]int // column name to its position in header
	rows   [][]string
}

// delimiterFor returns the field delimiter implied by a table path's
// extension. A trailing .gz is ignored.
func delimiterFor(path string) (rune, error) {
	base := strings.TrimSuffix(path, ".gz")
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv":
		return ',', nil
	case ".tsv", ".tab", ".txt":
		return '\t', nil
	}

	return 0, fmt.Errorf("unrecognized table extension on %s: expected .csv, .tsv, .tab or .txt", path)
}

// ReadTable loads the delimited file at path and checks that the identifier
// and sequence columns exist. An empty idCol falls back to the first column.
func ReadTable(path, idCol, seqCol string) (*Table, error) {
	comma, err := delimiterFor(path)
	if err != nil {
		return nil, err
	}

	f, err := csvh.OpenMaybeGz(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table at %s: %v", path, err)
	}
	defer f.Close()

	return readTable(f, path, comma, idCol, seqCol)
}

func readTable(r io.Reader, path string, comma rune, idCol, seqCol string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table at %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table at %s", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	if idCol == "" {
		idCol = header[0]
	}
	for _, col := range []string{idCol, seqCol} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("no column %q in %s, saw: %s", col, path, strings.Join(header, ", "))
		}
	}

	return &Table{
		Path:   path,
		IDCol:  idCol,
		SeqCol: seqCol,
		header: header,
		index:  index,
		rows:   records[1:],
	}, nil
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return t.header
}

// Has reports whether the table has a column with the name.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// cell returns the row's value in the named column, or "" for short rows.
func (t *Table) cell(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Records extracts the (identifier, sequence) pairs from the table in row
// order. Rows with an empty sequence cell are skipped: there's nothing
// to align them with.
func (t *Table) Records() []SeqRecord {
	var recs []SeqRecord
	for _, row := range t.rows {
		seq := strings.TrimSpace(t.cell(row, t.SeqCol))
		if seq == "" {
			continue
		}
		recs = append(recs, SeqRecord{ID: t.cell(row, t.IDCol), Seq: seq})
	}

	return recs
}

// rowsByID indexes the table's rows by their identifier cell.
// The last row wins when identifiers repeat.
func (t *Table) rowsByID() map[string][]string {
	byID := make(map[string][]string, len(t.rows))
	for _, row := range t.rows {
		id := t.cell(row, t.IDCol)
		if _, seen := byID[id]; seen {
			stderr.Printf("warning: duplicate identifier %q in %s, keeping the last row\n", id, t.Path)
		}
		byID[id] = row
	}

	return byID
}
