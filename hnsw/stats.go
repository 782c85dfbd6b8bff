package hnsw

// Stats is a snapshot of the graph's shape, useful when tuning M and EF.
type Stats struct {
	Nodes       int
	MaxLevel    int
	Connections int // total directed links over all layers
}

// Stats returns a snapshot of the graph's shape.
func (h *Index) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Stats{
		Nodes:    len(h.nodes),
		MaxLevel: h.maxLevel,
	}
	for _, node := range h.nodes {
		for _, conns := range node.Connections {
			s.Connections += len(conns)
		}
	}
	return s
}
