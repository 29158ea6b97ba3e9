// Package monitor samples process statistics for the debug HUD.
package monitor

import (
	"context"
	"math"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// sampleInterval keeps the poll cheap; the HUD does not need more than
// a reading every couple of seconds.
const sampleInterval = 2 * time.Second

// Sample is one statistics reading, rounded to a single decimal.
type Sample struct {
	CPU   float64 // system CPU percent, averaged over all cores
	RSSMB float64 // resident memory of this process in MiB
}

// Sampler polls CPU and memory in the background. The game loop reads
// Latest; the goroutine writes it. That crossing is the only shared state.
type Sampler struct {
	mu     sync.Mutex
	latest Sample

	proc *process.Process
	done chan struct{}
}

// NewSampler builds a sampler bound to the current process. Process
// lookup failure leaves RSS at zero; CPU still reports.
func NewSampler() *Sampler {
	s := &Sampler{}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

// Start launches the poll goroutine. It samples immediately, then every
// sampleInterval until ctx is canceled.
func (s *Sampler) Start(ctx context.Context) {
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.sampleOnce()
		ticker := time.NewTicker(sampleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sampleOnce()
			}
		}
	}()
}

// Wait blocks until the poll goroutine has exited.
func (s *Sampler) Wait() {
	if s.done != nil {
		<-s.done
	}
}

// Latest returns the most recent reading.
func (s *Sampler) Latest() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *Sampler) sampleOnce() {
	var sample Sample

	// Interval 0 measures against the previous call instead of blocking
	// the goroutine for a sampling window.
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		sample.CPU = round1(pct[0])
	}
	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			sample.RSSMB = round1(float64(mi.RSS) / (1024 * 1024))
		}
	}

	s.mu.Lock()
	s.latest = sample
	s.mu.Unlock()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
