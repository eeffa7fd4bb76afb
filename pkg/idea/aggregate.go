package idea

// RecomputeMeasurements rebuilds the document-level measurements config.
//
// Every node except the root is visited in pre-order; the root carries
// document attributes, not content measurements. Names are collected in
// first-seen order (pre-order across nodes, insertion order within a node),
// so the result is deterministic. The config is always rebuilt from scratch
// and returned.
func (t *Tree) RecomputeMeasurements() []string {
	seen := make(map[string]bool)
	config := []string{}
	for s := range t.Walk() {
		if s.Node == t.Root || s.Node.Attr == nil {
			continue
		}
		for _, name := range s.Node.Attr.Measurements.Names() {
			if !seen[name] {
				seen[name] = true
				config = append(config, name)
			}
		}
	}
	t.MeasurementsConfig = config
	return config
}
