//go:build unix

package process_test

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/observability"
	"github.com/kbukum/procout/process"
	"github.com/kbukum/procout/provider"
)

func TestRun_Success(t *testing.T) {
	result, err := process.Run(context.Background(), shell("echo hello world"))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, []string{"hello world"}, result.Stdout)
	assert.Positive(t, result.Duration)
}

func TestRun_NonZeroExit(t *testing.T) {
	result, err := process.Run(context.Background(), shell("echo partial; exit 42"))
	require.Error(t, err)

	appErr, ok := goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeNonZeroExit, appErr.Code)
	assert.Equal(t, 42, result.ExitCode)
	assert.Equal(t, []string{"partial"}, result.Stdout)
}

func TestRun_ContextDeadlineKills(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, err := process.Run(ctx, process.LaunchSpec{Path: "sleep", Args: []string{"10"}, Hidden: true})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	appErr, ok := goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeTimeout, appErr.Code)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 137, result.ExitCode)
}

func TestLauncherRun_ConfiguredTimeout(t *testing.T) {
	l := process.NewLauncher(process.Config{Timeout: 100 * time.Millisecond})
	_, err := l.Run(context.Background(), process.LaunchSpec{Path: "sleep", Args: []string{"10"}, Hidden: true})

	appErr, ok := goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeTimeout, appErr.Code)
}

func TestRun_LaunchFailure(t *testing.T) {
	result, err := process.Run(context.Background(), process.LaunchSpec{Path: filepath.Join(t.TempDir(), "missing")})

	appErr, ok := goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeLaunchFailed, appErr.Code)
	assert.Equal(t, -1, result.ExitCode)
	assert.Len(t, result.Stderr, 1)
}

func TestAdapter(t *testing.T) {
	a := process.NewAdapter(process.Config{Name: "shell"})
	assert.Equal(t, "shell", a.Name())
	assert.True(t, a.IsAvailable(context.Background()))

	result, err := a.Execute(context.Background(), shell("echo via adapter"))
	require.NoError(t, err)
	assert.Equal(t, []string{"via adapter"}, result.Stdout)
}

func TestExecutableProvider(t *testing.T) {
	wc := process.NewExecutableProvider("word-count", "sh", nil,
		func(text string) []string {
			return []string{"-c", `printf '%s' "$1" | wc -w`, "sh", text}
		},
		func(r *process.Result) (int, error) {
			if len(r.Stdout) == 0 {
				return 0, errors.New("no output")
			}
			return strconv.Atoi(strings.TrimSpace(r.Stdout[0]))
		},
	)

	assert.Equal(t, "word-count", wc.Name())
	assert.True(t, wc.IsAvailable(context.Background()))

	n, err := wc.Execute(context.Background(), "one two three")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	missing := process.NewExecutableProvider("missing", filepath.Join(t.TempDir(), "nope"), nil,
		func(string) []string { return nil },
		func(*process.Result) (string, error) { return "", nil },
	)
	assert.False(t, missing.IsAvailable(context.Background()))
	_, err = missing.Execute(context.Background(), "")
	assert.Error(t, err)
}

func TestStreamer_CollectsInOrder(t *testing.T) {
	s := process.NewStreamer(process.Config{Name: "stream"}, 0)
	assert.Equal(t, "stream", s.Name())

	it, err := s.Start(context.Background(), shell("echo 1; echo 2; echo 3"))
	require.NoError(t, err)
	o := it.Output()

	lines, err := provider.Collect[process.Line](context.Background(), it)
	require.NoError(t, err)
	assert.Equal(t, []process.Line{
		{Stream: process.Stdout, Text: "1"},
		{Stream: process.Stdout, Text: "2"},
		{Stream: process.Stdout, Text: "3"},
	}, lines)

	code, ok := o.ExitCode()
	require.True(t, ok)
	assert.Equal(t, 0, code)
}

func TestStreamer_TagsStreams(t *testing.T) {
	s := process.NewStreamer(process.Config{}, 16)
	it, err := s.Execute(context.Background(), shell("echo out; echo err >&2"))
	require.NoError(t, err)

	lines, err := provider.Collect(context.Background(), it)
	require.NoError(t, err)
	assert.ElementsMatch(t, []process.Line{
		{Stream: process.Stdout, Text: "out"},
		{Stream: process.Stderr, Text: "err"},
	}, lines)
}

func TestStreamer_CloseStopsProducer(t *testing.T) {
	s := process.NewStreamer(process.Config{}, 0)
	it, err := s.Start(context.Background(), process.LaunchSpec{Path: "yes", Hidden: true})
	require.NoError(t, err)

	line, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", line.Text)

	require.NoError(t, it.Close())
	require.NoError(t, it.Close())
	assert.Equal(t, process.StateExited, it.Output().State())
}

func TestStreamer_NextHonorsContext(t *testing.T) {
	s := process.NewStreamer(process.Config{}, 0)
	it, err := s.Start(context.Background(), process.LaunchSpec{Path: "sleep", Args: []string{"30"}, Hidden: true})
	require.NoError(t, err)
	defer it.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, ok, err := it.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStreamer_Rejects(t *testing.T) {
	s := process.NewStreamer(process.Config{}, 0)

	spec := shell("true")
	spec.Redirector = &recorder{}
	_, err := s.Start(context.Background(), spec)
	appErr, ok := goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeInvalidInput, appErr.Code)

	_, err = s.Start(context.Background(), process.LaunchSpec{Path: filepath.Join(t.TempDir(), "missing")})
	appErr, ok = goerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, goerrors.ErrCodeLaunchFailed, appErr.Code)
}

func TestLauncher_Instrumentation(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	l := process.NewLauncher(process.Config{}, process.WithMetrics(metrics))

	exited := make(chan struct{})
	spec := shell("exit 1")
	spec.OnExit = func(int) { close(exited) }
	o := l.Launch(context.Background(), spec)
	defer o.Close()
	<-exited

	failed := l.Launch(context.Background(), process.LaunchSpec{Path: filepath.Join(t.TempDir(), "missing")})
	defer failed.Close()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, process.SpanLaunch, span.Name)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(1), counter(rm, "process.launch.total"))
	assert.Equal(t, int64(1), counter(rm, "process.launch.failures"))
	assert.Equal(t, int64(0), counter(rm, "process.active"))
}

func counter(rm metricdata.ResourceMetrics, name string) int64 {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			var total int64
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
			return total
		}
	}
	return 0
}
