package crossann

import "sort"

// BBHPair links a table1 row to the table2 row it's mutually top-ranked
// with. Hit is the forward hit (table1 as query), the source of the pair's
// quality metrics.
type BBHPair struct {
	ID1 string
	ID2 string
	Hit Hit
}

// better reports whether hit a outranks hit b for the same query.
// Ranked by bitscore, then %-identity, then alignment length. Full ties
// keep the hit seen first so equal aligner output always resolves the
// same way.
func better(a, b Hit) bool {
	if a.BitScore != b.BitScore {
		return a.BitScore > b.BitScore
	}
	if a.IdentityPct != b.IdentityPct {
		return a.IdentityPct > b.IdentityPct
	}
	return a.Length > b.Length
}

// bestHits reduces one direction's hits to a single best hit per query.
func bestHits(hits []Hit) map[string]Hit {
	best := make(map[string]Hit)
	for _, h := range hits {
		if cur, ok := best[h.Query]; !ok || better(h, cur) {
			best[h.Query] = h
		}
	}

	return best
}

// Reciprocal intersects the two directions' best hits into the BBH set:
// (id1, id2) survives only when id1's best hit is id2 AND id2's best hit
// is id1. One-sided matches (paralogs, multi-domain hits) are dropped.
// Each identifier appears in at most one pair. Pairs are sorted by id1.
func Reciprocal(fwd, rev []Hit) []BBHPair {
	fwdBest := bestHits(fwd)
	revBest := bestHits(rev)

	var pairs []BBHPair
	for id1, h := range fwdBest {
		back, ok := revBest[h.Subject]
		if !ok || back.Subject != id1 {
			continue
		}
		pairs = append(pairs, BBHPair{ID1: id1, ID2: h.Subject, Hit: h})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].ID1 < pairs[j].ID1
	})

	return pairs
}
