package crossann

import (
	"fmt"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// fastaWidth is the sequence line width of aligner input files.
const fastaWidth = 80

// writeFasta materializes sequence records as a FASTA file for the aligner.
func writeFasta(path string, recs []SeqRecord, alpha alphabet.Alphabet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FASTA file at %s: %v", path, err)
	}
	defer f.Close()

	w := fasta.NewWriter(f, fastaWidth)
	for _, r := range recs {
		s := linear.NewSeq(r.ID, alphabet.BytesToLetters([]byte(r.Seq)), alpha)
		if _, err := w.Write(s); err != nil {
			return fmt.Errorf("failed to write %s to %s: %v", r.ID, path, err)
		}
	}

	return nil
}

// queryAlphabet is the alphabet of a direction's query sequences.
func queryAlphabet(mode Mode) alphabet.Alphabet {
	if mode == BlastX {
		return alphabet.DNA
	}
	return alphabet.Protein
}
