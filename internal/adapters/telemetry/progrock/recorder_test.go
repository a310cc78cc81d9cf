package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock/console"
	"go.trai.ch/pave/internal/adapters/telemetry/progrock"
)

// consoleRecorder backs a Recorder with a buffer so tests can assert that
// spans actually produce visible progress output.
func consoleRecorder(t *testing.T) (*progrock.Recorder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return progrock.NewRecorder(console.NewWriter(&buf)), &buf
}

func TestRecorder_SpanLifecycle(t *testing.T) {
	rec, buf := consoleRecorder(t)
	defer rec.Close() //nolint:errcheck // best effort close in test

	_, span := rec.Start(context.Background(), "lock dev")
	require.NotNil(t, span)

	n, err := span.Write([]byte("resolving\n"))
	require.NoError(t, err)
	assert.Equal(t, len("resolving\n"), n)

	span.SetAttribute("group", "dev")
	span.End()

	assert.Contains(t, buf.String(), "lock dev")
}

func TestRecorder_SpanError(t *testing.T) {
	rec, buf := consoleRecorder(t)
	defer rec.Close() //nolint:errcheck // best effort close in test

	_, span := rec.Start(context.Background(), "install")
	span.RecordError(errors.New("boom"))
	span.End()

	assert.Contains(t, buf.String(), "install")
}

func TestRecorder_CachedSpan(t *testing.T) {
	rec, buf := consoleRecorder(t)
	defer rec.Close() //nolint:errcheck // best effort close in test

	_, span := rec.Start(context.Background(), "lock default")
	span.Cached()
	span.End()

	assert.Contains(t, buf.String(), "lock default")
}

func TestRecorder_EmitPlan(t *testing.T) {
	rec, buf := consoleRecorder(t)
	defer rec.Close() //nolint:errcheck // best effort close in test

	rec.EmitPlan(context.Background(), []string{"default", "dev"})

	assert.Contains(t, buf.String(), "plan: default, dev")
}
