// Package metrics counts the work done by conversions.
// Defined metrics:
//   hexdump.rows (counter)
//   hexdump.bytes_encoded (counter)
//   hexdump.bytes_decoded (counter)
//   toggle.fallback (counter)
//   toggle.invalid (counter)
//   toggle.elapsed_us (histogram)
package metrics

import (
	"sort"
	"time"

	"github.com/codahale/metrics"
)

var (
	Rows         = metrics.Counter("hexdump.rows")
	BytesEncoded = metrics.Counter("hexdump.bytes_encoded")
	BytesDecoded = metrics.Counter("hexdump.bytes_decoded")
	Fallbacks    = metrics.Counter("toggle.fallback")
	Invalid      = metrics.Counter("toggle.invalid")

	elapsed = metrics.NewHistogram("toggle.elapsed_us", 1, int64(time.Hour/time.Microsecond), 3)
)

// RecordElapsed records the time since t0
// in the toggle.elapsed_us histogram.
// Durations above an hour are dropped.
func RecordElapsed(t0 time.Time) {
	us := int64(time.Since(t0) / time.Microsecond)
	if us < 1 {
		us = 1
	}
	elapsed.RecordValue(us) // out of range is the only error
}

// Counters returns a snapshot of every counter.
func Counters() map[string]uint64 {
	c, _ := metrics.Snapshot()
	return c
}

// Keyvals returns the counters as alternating
// names and values, sorted by name,
// in the form taken by log.Printkv.
func Keyvals() []interface{} {
	c := Counters()
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	kv := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		kv = append(kv, name, c[name])
	}
	return kv
}
