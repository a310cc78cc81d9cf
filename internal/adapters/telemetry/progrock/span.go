package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span wraps a *progrock.VertexRecorder as a ports.Span.
type Span struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write streams collaborator output into the vertex log.
func (s *Span) Write(p []byte) (n int, err error) {
	return s.vertex.Stdout().Write(p)
}

// RecordError keeps the error for End to report.
func (s *Span) RecordError(err error) {
	s.err = err
}

// SetAttribute logs the pair into the vertex output.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stderr(), "%s: %v\n", key, value)
}

// Cached marks the vertex as a cache hit.
func (s *Span) Cached() {
	s.vertex.Cached()
}

// End completes the vertex with any recorded error.
func (s *Span) End() {
	s.vertex.Done(s.err)
}
