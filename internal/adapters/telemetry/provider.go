package telemetry

import (
	"os"

	"golang.org/x/term"

	"go.trai.ch/pave/internal/adapters/telemetry/progrock"
	"go.trai.ch/pave/internal/core/ports"
)

// NewTracer picks the tracer for this invocation. PAVE_TRACE=otel forces the
// OpenTelemetry tracer for runs feeding an external collector; interactive
// terminals get the progrock tape; everything else (CI, pipes) stays silent.
func NewTracer() ports.Tracer {
	if os.Getenv("PAVE_TRACE") == "otel" {
		return NewOTelTracer("pave")
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return progrock.New()
	}
	return NewNoOpTracer()
}
