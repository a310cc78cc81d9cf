// Package progrock renders sync progress as vertex updates on interactive
// terminals.
package progrock

import (
	"context"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"github.com/vito/progrock/console"
	"go.trai.ch/pave/internal/core/ports"
)

var _ ports.Tracer = (*Recorder)(nil)

// Recorder implements ports.Tracer on top of a progrock writer. Each span
// becomes a vertex; collaborator output streams into the vertex log.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder printing vertex progress to stderr as each status
// update arrives.
func New() *Recorder {
	return NewRecorder(console.NewWriter(os.Stderr))
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex for the named unit of work.
func (r *Recorder) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := digest.FromString(name)
	return ctx, &Span{vertex: r.rec.Vertex(d, name)}
}

// EmitPlan records the sync plan as its own completed vertex so the output
// shows upfront what the run covers.
func (r *Recorder) EmitPlan(_ context.Context, groups []string) {
	name := "plan: " + strings.Join(groups, ", ")
	v := r.rec.Vertex(digest.FromString(name), name)
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
