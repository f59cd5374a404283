package metrics

// computeDegree counts link occurrences per endpoint. Weight is ignored so
// that Σ OutDegree equals the number of links.
func computeDegree(st *state) error {
	idx := st.g.IndexByID()
	for _, l := range st.g.Links {
		st.g.Nodes[idx[l.Source]].OutDegree++
		st.g.Nodes[idx[l.Target]].InDegree++
	}
	for i := range st.g.Nodes {
		n := &st.g.Nodes[i]
		n.Degree = n.InDegree + n.OutDegree
	}

	return nil
}
