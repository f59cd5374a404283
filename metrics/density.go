package metrics

// computeDensity sets density = 2·P / (n(n-1)) where P counts distinct
// unordered node pairs joined by at least one link. Reciprocal links count
// as one pair, so the value stays in [0,1].
func computeDensity(st *state) error {
	st.res.Density = Density(st.adj.Len(), st.adj.Pairs())
	return nil
}

// Density returns 2·pairs / (n(n-1)), or 0 for n < 2.
func Density(n, pairs int) float64 {
	if n < 2 {
		return 0
	}

	return 2 * float64(pairs) / float64(n*(n-1))
}
