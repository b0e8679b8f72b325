package crossann

// Metrics are the per-pair alignment quality values written to the output.
type Metrics struct {
	// %-identity over the aligned region, copied from the hit
	IdentityPct float64

	// e-value of the hit
	EValue float64

	// bitscore of the hit
	BitScore float64

	// min(qlen, slen) / max(qlen, slen), in (0, 1]
	LenRatio float64

	// alignment length / max(qlen, slen), in (0, 1]
	Coverage float64
}

// Score derives a pair's metrics from its forward hit. Pure: no further
// aligner calls are made.
func Score(h Hit) Metrics {
	longer, shorter := float64(h.QueryLen), float64(h.SubjectLen)
	if shorter > longer {
		longer, shorter = shorter, longer
	}

	if longer == 0 {
		// the aligner didn't report lengths, leave the ratios unset
		return Metrics{IdentityPct: h.IdentityPct, EValue: h.EValue, BitScore: h.BitScore}
	}

	cov := float64(h.Length) / longer
	if cov > 1 {
		cov = 1 // translated searches report alignment length in residues
	}

	return Metrics{
		IdentityPct: h.IdentityPct,
		EValue:      h.EValue,
		BitScore:    h.BitScore,
		LenRatio:    shorter / longer,
		Coverage:    cov,
	}
}
