package md2html

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit can exceed max",
			workers: 16,
			want:    16,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer pool.Close()

	conv1, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	conv2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if conv1 == conv2 {
		t.Error("expected different converter instances")
	}

	pool.Release(conv1)
	conv3, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if conv3 != conv1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(conv2)
	pool.Release(conv3)
}

func TestConverterPool_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	got := make(chan *Converter)
	go func() {
		c, _ := pool.Acquire()
		got <- c
	}()

	select {
	case <-got:
		t.Fatal("Acquire() should block while the only converter is in use")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(conv)
	select {
	case c := <-got:
		if c != conv {
			t.Error("expected the released converter")
		}
		pool.Release(c)
	case <-time.After(time.Second):
		t.Fatal("Acquire() did not unblock after Release()")
	}
}

func TestConverterPool_CreationError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTheme("no-such-theme"))
	defer pool.Close()

	_, err := pool.Acquire()
	if !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("Acquire() error = %v, want ErrThemeNotFound", err)
	}

	// A failed creation frees its slot.
	pool.newConverter = func(...Option) (*Converter, error) { return NewConverter() }
	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() after failure error: %v", err)
	}
	pool.Release(conv)
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(conv)
			if _, err := conv.Convert(context.Background(), Input{Markdown: "# A\n\n## B"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent conversion error: %v", err)
	}
	if pool.created > pool.Size() {
		t.Errorf("created %d converters, capacity %d", pool.created, pool.Size())
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	mock := &mockPDFConverter{}
	conv.pdf = mock

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !mock.CloseCalled {
		t.Error("Close() did not close created converters")
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	// Releasing after close is a no-op.
	pool.Release(conv)
}

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	if got := NewConverterPool(0).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestConverterPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := pool.Acquire(); !errors.Is(err, errPoolClosed) {
		t.Errorf("Acquire() error = %v, want errPoolClosed", err)
	}
}
