package provider_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/procout/provider"
)

// --- Test types ---

type echoProvider struct {
	name string
}

func (p *echoProvider) Name() string                       { return p.name }
func (p *echoProvider) IsAvailable(_ context.Context) bool { return true }

func (p *echoProvider) Execute(_ context.Context, in string) (string, error) {
	return "echo:" + in, nil
}

var _ provider.RequestResponse[string, string] = (*echoProvider)(nil)

type failingProvider struct{}

func (p *failingProvider) Name() string                       { return "fail" }
func (p *failingProvider) IsAvailable(_ context.Context) bool { return true }
func (p *failingProvider) Execute(_ context.Context, _ string) (string, error) {
	return "", errors.New("intentional failure")
}

// sliceIterator yields items and then fails with err, if set.
type sliceIterator[T any] struct {
	items  []T
	pos    int
	err    error
	closed int
}

func (it *sliceIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.pos >= len(it.items) {
		return zero, false, it.err
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIterator[T]) Close() error {
	it.closed++
	return nil
}

type linesProvider struct{}

func (p *linesProvider) Name() string                       { return "lines" }
func (p *linesProvider) IsAvailable(_ context.Context) bool { return true }
func (p *linesProvider) Execute(_ context.Context, in string) (provider.Iterator[string], error) {
	return &sliceIterator[string]{items: strings.Split(in, "\n")}, nil
}

var _ provider.Stream[string, string] = (*linesProvider)(nil)

// --- Tests ---

func TestRequestResponse(t *testing.T) {
	p := &echoProvider{name: "test"}
	result, err := p.Execute(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %s", result)
	}
}

func TestStream(t *testing.T) {
	p := &linesProvider{}
	it, err := p.Execute(context.Background(), "a\nb\nc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer it.Close()

	var result []string
	for {
		v, more, err := it.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !more {
			break
		}
		result = append(result, v)
	}
	if strings.Join(result, ",") != "a,b,c" {
		t.Fatalf("expected a,b,c, got %v", result)
	}
}

func TestCollect(t *testing.T) {
	it := &sliceIterator[string]{items: []string{"x", "y"}}
	values, err := provider.Collect[string](context.Background(), it)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 2 || values[0] != "x" || values[1] != "y" {
		t.Fatalf("expected [x y], got %v", values)
	}
	if it.closed != 1 {
		t.Fatalf("expected iterator to be closed once, got %d", it.closed)
	}
}

func TestCollect_ErrorKeepsValues(t *testing.T) {
	boom := errors.New("read failed")
	it := &sliceIterator[string]{items: []string{"x"}, err: boom}
	values, err := provider.Collect[string](context.Background(), it)
	if !errors.Is(err, boom) {
		t.Fatalf("expected read failure, got %v", err)
	}
	if len(values) != 1 || values[0] != "x" {
		t.Fatalf("expected values read before the error, got %v", values)
	}
	if it.closed != 1 {
		t.Fatal("expected iterator to be closed on error")
	}
}

func TestCollect_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.Collect[string](ctx, &sliceIterator[string]{items: []string{"x"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
