package crossann

import "strings"

// nucleotides are the characters counted toward the DNA fraction of a
// sampled sequence column. N is ambiguous, U covers RNA exports.
const nucleotides = "ACGTNU"

// SeqType is a table's run-wide sequence classification. It decides the
// aligner mode the table's sequences are queried with.
type SeqType int

const (
	// Protein sequences are compared directly (blastp)
	Protein SeqType = iota

	// DNA sequences are translated before comparison (blastx)
	DNA
)

func (s SeqType) String() string {
	if s == DNA {
		return "DNA"
	}
	return "protein"
}

// DetectSeqType classifies a table's sequence column by sampling its first
// sampleSize non-empty sequences. The column is DNA when the fraction of
// nucleotide characters exceeds dnaFraction, protein otherwise. Empty or
// ambiguous samples (fraction exactly at the cutoff) fall back to protein:
// misreading DNA as protein degrades the alignment rather than crashing it.
func DetectSeqType(recs []SeqRecord, sampleSize int, dnaFraction float64) SeqType {
	var sample strings.Builder
	sampled := 0
	for _, r := range recs {
		if sampled == sampleSize {
			break
		}
		if r.Seq == "" {
			continue
		}
		sample.WriteString(strings.ToUpper(r.Seq))
		sampled++
	}

	if sample.Len() == 0 {
		return Protein
	}

	dna := 0
	for _, c := range sample.String() {
		if strings.ContainsRune(nucleotides, c) {
			dna++
		}
	}

	if float64(dna)/float64(sample.Len()) > dnaFraction {
		return DNA
	}
	return Protein
}
