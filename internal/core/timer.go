package core

import "time"

// Throughput tracks elapsed wall-clock time and the rate at which work units
// (trials) are completed between successive marks.
type Throughput struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	total int64
}

// NewThroughput starts a throughput meter at the current time.
func NewThroughput() *Throughput {
	return newThroughput(time.Now)
}

func newThroughput(now func() time.Time) *Throughput {
	t := &Throughput{now: now}
	t.start = now()
	t.last = t.start
	return t
}

// Mark records n completed units and returns the per-second rate since the
// previous mark. A zero-length interval reports a rate of 0.
func (t *Throughput) Mark(n int) float64 {
	cur := t.now()
	delta := cur.Sub(t.last)
	t.last = cur
	t.total += int64(n)
	if delta <= 0 {
		return 0
	}
	return float64(n) / delta.Seconds()
}

// Total reports the number of units recorded so far.
func (t *Throughput) Total() int64 { return t.total }

// Elapsed reports the wall-clock time since the meter was started.
func (t *Throughput) Elapsed() time.Duration { return t.now().Sub(t.start) }
