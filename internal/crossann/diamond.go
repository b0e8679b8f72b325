package crossann

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/rguerillot/CrossAnnotate/config"
)

// SeqRecord is one (identifier, sequence) pair pulled from a table row.
type SeqRecord struct {
	ID  string
	Seq string
}

// Hit is one row of the aligner's tabular output.
type Hit struct {
	// Query sequence's identifier
	Query string

	// Subject (reference) sequence's identifier
	Subject string

	// IdentityPct is the %-identity over the aligned region
	IdentityPct float64

	// Length of the alignment
	Length int64

	// QueryLen is the full query sequence's length
	QueryLen int64

	// SubjectLen is the full subject sequence's length
	SubjectLen int64

	// EValue of the hit
	EValue float64

	// BitScore of the hit. hits are ranked by it
	BitScore float64
}

// Mode is the comparison an alignment direction runs with.
type Mode string

const (
	// BlastP compares a protein query against a protein reference
	BlastP Mode = "blastp"

	// BlastX translates a nucleotide query and compares it against a protein reference
	BlastX Mode = "blastx"
)

// ModeFor picks the aligner mode for a query of the given sequence type.
func ModeFor(query SeqType) Mode {
	if query == DNA {
		return BlastX
	}
	return BlastP
}

// Aligner finds hits of the query sequences against a reference set.
// Diamond implements it against the real binary, tests use a stub.
type Aligner interface {
	Align(query, ref []SeqRecord, mode Mode, threads int) ([]Hit, error)
}

// hitFields is the output column contract with the aligner. parseHits
// scans rows in exactly this order.
var hitFields = []string{"qseqid", "sseqid", "pident", "length", "qlen", "slen", "evalue", "bitscore"}

// Diamond runs the external diamond binary to index and search sequence sets.
type Diamond struct {
	// the maximum e-value of reported hits
	evalue float64

	// the minimum %-identity of reported hits
	identity float64

	// the minimum query coverage of reported hits
	cover float64

	// dir holds each direction's FASTA inputs, database and hit output
	dir string
}

// NewDiamond checks that diamond is installed and creates a temporary
// workspace for its inputs and outputs, removed by Close.
func NewDiamond(c *config.Config) (*Diamond, error) {
	if _, err := exec.LookPath("diamond"); err != nil {
		return nil, fmt.Errorf("failed to find diamond in your $PATH: %v\n\tinstall instructions: https://github.com/bbuchfink/diamond", err)
	}

	dir, err := os.MkdirTemp("", "crossannotate")
	if err != nil {
		return nil, err
	}

	return &Diamond{
		evalue:   c.Aligner.EValue,
		identity: c.Aligner.Identity,
		cover:    c.Aligner.Cover,
		dir:      dir,
	}, nil
}

// Close removes the temporary workspace and everything beneath it.
func (d *Diamond) Close() {
	os.RemoveAll(d.dir)
}

// Align writes both sequence sets to FASTA files, indexes the reference set
// and searches the queries against it, returning the parsed hits.
func (d *Diamond) Align(query, ref []SeqRecord, mode Mode, threads int) ([]Hit, error) {
	run, err := os.MkdirTemp(d.dir, "align-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(run)

	queryFile := filepath.Join(run, "query.fasta")
	if err := writeFasta(queryFile, query, queryAlphabet(mode)); err != nil {
		return nil, err
	}

	refFile := filepath.Join(run, "ref.fasta")
	if err := writeFasta(refFile, ref, alphabet.Protein); err != nil {
		return nil, err
	}

	db := filepath.Join(run, "db")
	if err := d.makedb(refFile, db); err != nil {
		return nil, err
	}

	out := filepath.Join(run, "hits.tsv")
	if err := d.search(mode, queryFile, db, out, threads); err != nil {
		return nil, err
	}

	return parseHits(out)
}

// makedb indexes the reference FASTA file into a searchable diamond database.
func (d *Diamond) makedb(in, db string) error {
	cmd := exec.Command("diamond", "makedb", "--in", in, "-d", db, "--quiet")

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build a diamond database from %s: %v: %s", in, err, string(output))
	}

	return nil
}

// search runs a single direction's alignment and writes hits to out.
func (d *Diamond) search(mode Mode, query, db, out string, threads int) error {
	if threads < 1 {
		threads = 1
	}

	flags := []string{
		string(mode),
		"-q", query,
		"-d", db,
		"-o", out,
		"--threads", strconv.Itoa(threads),
		"--evalue", strconv.FormatFloat(d.evalue, 'g', -1, 64),
		"--id", strconv.FormatFloat(d.identity, 'g', -1, 64),
		"--query-cover", strconv.FormatFloat(d.cover, 'g', -1, 64),
		"--max-target-seqs", "1",
		"--quiet",
		"--outfmt", "6",
	}
	flags = append(flags, hitFields...)

	// https://github.com/bbuchfink/diamond/wiki
	cmd := exec.Command("diamond", flags...)

	// execute diamond and wait on it to finish
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute diamond %s: %v: %s", mode, err, string(output))
	}

	return nil
}

// parseHits reads the aligner's tab-delimited output into Hits.
// Malformed rows are skipped, an empty file means zero hits.
func parseHits(path string) ([]Hit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hits []Hit
	cr := csvh.CsvIn(f)
	cr.FieldsPerRecord = -1 // diamond can emit ragged rows on crash
	for l, err := cr.Read(); err != io.EOF; l, err = cr.Read() {
		if err != nil {
			return nil, fmt.Errorf("failed to parse aligner output at %s: %v", path, err)
		}
		if len(l) < len(hitFields) {
			continue
		}

		var h Hit
		if _, err := csvh.Scan(l,
			&h.Query, &h.Subject,
			&h.IdentityPct, &h.Length,
			&h.QueryLen, &h.SubjectLen,
			&h.EValue, &h.BitScore,
		); err != nil {
			continue
		}

		hits = append(hits, h)
	}

	return hits, nil
}
