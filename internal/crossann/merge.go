package crossann

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// metricCols are the computed columns always present in the output, in order.
var metricCols = []string{"identity_pct", "evalue", "bitscore", "len_ratio", "coverage"}

// PassthroughColumns resolves the --passthrough flag against table1's header.
// "*" selects every column except the identifier (already in the output) and,
// unless keepSeqs, the sequence column. A comma-separated list selects that
// subset; naming a column the table doesn't have is an error.
func PassthroughColumns(t *Table, passthrough string, keepSeqs bool) ([]string, error) {
	if passthrough == "" {
		return nil, nil
	}

	if passthrough == "*" {
		var cols []string
		for _, c := range t.Columns() {
			if c == t.IDCol {
				continue
			}
			if c == t.SeqCol && !keepSeqs {
				continue
			}
			cols = append(cols, c)
		}
		return cols, nil
	}

	var cols []string
	for _, c := range strings.Split(passthrough, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !t.Has(c) {
			return nil, fmt.Errorf("no passthrough column %q in %s, saw: %s", c, t.Path, strings.Join(t.Columns(), ", "))
		}
		cols = append(cols, c)
	}

	return cols, nil
}

// Merge joins the two tables on the BBH pairs and writes the output table:
// both identifier columns, the computed metrics, then any passthrough
// columns from table1. The join is inner: rows outside the BBH set are
// dropped. The output delimiter follows the output path's extension,
// defaulting to CSV.
func Merge(out string, t1, t2 *Table, pairs []BBHPair, passthrough []string) error {
	comma, err := delimiterFor(out)
	if err != nil {
		comma = ','
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create an output table at %s: %v", out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma

	header := []string{t1.IDCol, t2.IDCol}
	if t2.IDCol == t1.IDCol {
		header[1] = "t2_" + t2.IDCol
	}
	header = append(header, metricCols...)
	for _, c := range passthrough {
		header = append(header, dedupe(c, header))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	rows1 := t1.rowsByID()
	for _, p := range pairs {
		m := Score(p.Hit)
		row := []string{
			p.ID1,
			p.ID2,
			formatFloat(m.IdentityPct),
			formatFloat(m.EValue),
			formatFloat(m.BitScore),
			formatFloat(m.LenRatio),
			formatFloat(m.Coverage),
		}
		for _, c := range passthrough {
			row = append(row, t1.cell(rows1[p.ID1], c))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// dedupe prefixes a passthrough column's name when it collides with a
// column already in the output header.
func dedupe(col string, header []string) string {
	for _, h := range header {
		if h == col {
			return "t1_" + col
		}
	}
	return col
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
