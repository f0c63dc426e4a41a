// Package iostats instruments memfile handles, recording the byte count of
// every data operation into high dynamic range histograms. Wrap a handle,
// use it as usual, then pull Summaries to see the operation size
// distributions a workload produces.
package iostats

import (
	"sync"

	"github.com/codahale/hdrhistogram"
)

// byte counts are tracked from a single byte up to a gibibyte at three
// significant figures, larger operations saturate at the top of the scale
const (
	lowestTrackable  = 1
	highestTrackable = 1 << 30
	sigfigs          = 3
)

// Summary is a point in time digest of one direction of traffic.
type Summary struct {
	Count  int64
	Min    int64
	Max    int64
	Mean   float64
	StdDev float64
	P50    int64
	P99    int64
}

// Recorder aggregates the byte counts of reads and writes. It is safe for
// concurrent use, so one Recorder can observe several handles at once.
type Recorder struct {
	mutex  sync.Mutex
	reads  *hdrhistogram.Histogram
	writes *hdrhistogram.Histogram
}

// NewRecorder creates a Recorder with empty distributions.
func NewRecorder() *Recorder {
	return &Recorder{
		reads:  hdrhistogram.New(lowestTrackable, highestTrackable, sigfigs),
		writes: hdrhistogram.New(lowestTrackable, highestTrackable, sigfigs),
	}
}

// RecordRead records a read that moved n bytes. Operations that moved
// nothing are not observations and are dropped.
func (r *Recorder) RecordRead(n int) {
	if n <= 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	_ = r.reads.RecordValue(saturate(int64(n)))
}

// RecordWrite records a write that moved n bytes, like RecordRead.
func (r *Recorder) RecordWrite(n int) {
	if n <= 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	_ = r.writes.RecordValue(saturate(int64(n)))
}

// Reads returns the current digest of read sizes.
func (r *Recorder) Reads() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return summarize(r.reads)
}

// Writes returns the current digest of write sizes.
func (r *Recorder) Writes() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return summarize(r.writes)
}

// Reset discards all observations.
func (r *Recorder) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reads.Reset()
	r.writes.Reset()
}

// saturate keeps the value recordable, values above the scale land in the
// top bucket instead of erroring
func saturate(v int64) int64 {
	if v > highestTrackable {
		return highestTrackable
	}
	return v
}

func summarize(h *hdrhistogram.Histogram) Summary {
	return Summary{
		Count:  h.TotalCount(),
		Min:    h.Min(),
		Max:    h.Max(),
		Mean:   h.Mean(),
		StdDev: h.StdDev(),
		P50:    h.ValueAtQuantile(50),
		P99:    h.ValueAtQuantile(99),
	}
}
