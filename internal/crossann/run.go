// Package crossann merges two tables on bidirectional best hits between
// their sequence columns.
package crossann

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rguerillot/CrossAnnotate/config"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra flags for a single annotate run.
type Flags struct {
	// paths to the two input tables
	t1, t2 string

	// identifier column names ("" means the table's first column)
	i1, i2 string

	// sequence column names
	s1, s2 string

	// the --passthrough flag, "*" or a comma-separated column list
	passthrough string

	// whether '--passthrough *' keeps table1's sequence column
	keepSeqs bool

	// thread count forwarded to the aligner
	threads int

	// the output table path
	out string
}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(t1, t2, i1, i2, s1, s2, passthrough, out string, threads int) *Flags {
	return &Flags{
		t1:          t1,
		t2:          t2,
		i1:          i1,
		i2:          i2,
		s1:          s1,
		s2:          s2,
		passthrough: passthrough,
		out:         out,
		threads:     threads,
	}
}

// parseCmdFlags gathers the table paths, column names, etc from a cobra cmd
// object. Returns Flags and a Config struct for Annotate.
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	var err error
	fs := &Flags{}
	c := config.New()

	if fs.t1, err = cmd.Flags().GetString("t1"); fs.t1 == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no first table path set [--t1]")
	}

	if fs.t2, err = cmd.Flags().GetString("t2"); fs.t2 == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no second table path set [--t2]")
	}

	if fs.s1, err = cmd.Flags().GetString("s1"); fs.s1 == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no sequence column set for the first table [--s1]")
	}

	if fs.s2, err = cmd.Flags().GetString("s2"); fs.s2 == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no sequence column set for the second table [--s2]")
	}

	fs.i1, _ = cmd.Flags().GetString("i1")
	fs.i2, _ = cmd.Flags().GetString("i2")
	fs.passthrough, _ = cmd.Flags().GetString("passthrough")
	fs.keepSeqs, _ = cmd.Flags().GetBool("keep-seqs")
	fs.threads = c.Aligner.Threads

	if fs.out, err = cmd.Flags().GetString("out"); fs.out == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no output path set [--out]")
	}

	return fs, c
}

// AnnotateCmd runs the full merge pipeline from the annotate command.
func AnnotateCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)

	diamond, err := NewDiamond(conf)
	if err != nil {
		stderr.Fatal(err)
	}

	_, err = Annotate(flags, conf, diamond)
	diamond.Close() // remove aligner temp files even when the run failed
	if err != nil {
		stderr.Fatal(err)
	}
}

// Annotate is the pipeline behind 'crossannotate annotate': load both
// tables, detect their sequence types, align each against the other,
// resolve bidirectional best hits and write the merged table. Returns
// the number of BBH pairs written.
func Annotate(flags *Flags, conf *config.Config, aligner Aligner) (int, error) {
	start := time.Now()

	t1, err := ReadTable(flags.t1, flags.i1, flags.s1)
	if err != nil {
		return 0, err
	}
	t2, err := ReadTable(flags.t2, flags.i2, flags.s2)
	if err != nil {
		return 0, err
	}
	stderr.Printf("mapping via identifiers: %s [%s] <-> %s [%s]\n", flags.t1, t1.IDCol, flags.t2, t2.IDCol)

	// resolve passthrough up front so a misnamed column fails before
	// any aligner call
	passthrough, err := PassthroughColumns(t1, flags.passthrough, flags.keepSeqs)
	if err != nil {
		return 0, err
	}

	recs1 := t1.Records()
	recs2 := t2.Records()

	type1 := DetectSeqType(recs1, conf.Detector.SampleSize, conf.Detector.DNAFraction)
	type2 := DetectSeqType(recs2, conf.Detector.SampleSize, conf.Detector.DNAFraction)
	stderr.Printf("detected sequence types: %s=%s, %s=%s\n", flags.t1, type1, flags.t2, type2)
	if type1 == DNA {
		stderr.Printf("warning: %s holds DNA and can only be searched translated, its reverse direction may find few hits\n", flags.t1)
	}
	if type2 == DNA {
		stderr.Printf("warning: %s holds DNA and can only be searched translated, its reverse direction may find few hits\n", flags.t2)
	}

	stderr.Printf("forward search (%s)\n", ModeFor(type1))
	fwd, err := aligner.Align(recs1, recs2, ModeFor(type1), flags.threads)
	if err != nil {
		return 0, err
	}

	stderr.Printf("reverse search (%s)\n", ModeFor(type2))
	rev, err := aligner.Align(recs2, recs1, ModeFor(type2), flags.threads)
	if err != nil {
		return 0, err
	}

	pairs := Reciprocal(fwd, rev)
	if len(pairs) == 0 {
		stderr.Println("warning: no orthologs found. check the identifier and sequence columns and the detected types")
	}

	if err := Merge(flags.out, t1, t2, pairs, passthrough); err != nil {
		return 0, err
	}

	summary(os.Stdout, flags.out, pairs, type1, type2, time.Since(start))

	return len(pairs), nil
}

// summary logs the pair count, mean identity and detected types once the
// output table has been written.
func summary(w io.Writer, out string, pairs []BBHPair, type1, type2 SeqType, took time.Duration) {
	mean := 0.0
	for _, p := range pairs {
		mean += p.Hit.IdentityPct
	}
	if len(pairs) > 0 {
		mean /= float64(len(pairs))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "orthologs\tmean identity\ttable1\ttable2\ttime\n")
	fmt.Fprintf(tw, "%d\t%.2f%%\t%s\t%s\t%.1fs\n", len(pairs), mean, type1, type2, took.Seconds())
	tw.Flush()

	fmt.Fprintf(w, "\nwrote %s\n", out)
}
