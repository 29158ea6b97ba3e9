package monitor

import (
	"context"
	"testing"
	"time"
)

func TestSampleOnce(t *testing.T) {
	s := NewSampler()
	s.sampleOnce()

	got := s.Latest()
	if got.RSSMB <= 0 {
		t.Errorf("RSSMB = %v, want > 0 for a running process", got.RSSMB)
	}
	if got.CPU < 0 || got.CPU > 100 {
		t.Errorf("CPU = %v, want a percentage", got.CPU)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.2},
		{1.25, 1.3},
		{0, 0},
		{99.99, 100},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStartStop(t *testing.T) {
	s := NewSampler()
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sampler did not stop after cancel")
	}

	// The immediate first sample landed before shutdown finished.
	if s.Latest().RSSMB <= 0 {
		t.Errorf("RSSMB = %v, want a first sample", s.Latest().RSSMB)
	}
}
