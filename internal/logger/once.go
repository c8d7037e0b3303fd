package logger

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Once is a concurrent set of warning keys. Each key is reported at most once,
// no matter how many workers hit the same condition.
type Once struct {
	log   *zap.Logger
	seen  sync.Map
	count atomic.Int64
}

// NewOnce creates a warning set that logs through log. A nil logger falls back
// to the global one at the time of each call.
func NewOnce(log *zap.Logger) *Once {
	return &Once{log: log}
}

func (o *Once) logger() *zap.Logger {
	if o.log != nil {
		return o.log
	}
	return Log
}

// Record adds key to the set and reports whether it was new. Nothing is logged;
// recorded keys are reported together by Summary.
func (o *Once) Record(key string) bool {
	if _, loaded := o.seen.LoadOrStore(key, struct{}{}); loaded {
		return false
	}
	o.count.Inc()
	return true
}

// Warn logs msg the first time key is seen.
func (o *Once) Warn(key, msg string, fields ...zap.Field) {
	if o.Record(key) {
		o.logger().Warn(msg, append(fields, zap.String("key", key))...)
	}
}

// Len returns the number of distinct keys recorded.
func (o *Once) Len() int {
	return int(o.count.Load())
}

// Keys returns the recorded keys in sorted order.
func (o *Once) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.seen.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Summary logs a single warning listing every recorded key. It does nothing
// when the set is empty.
func (o *Once) Summary(msg string) {
	keys := o.Keys()
	if len(keys) == 0 {
		return
	}
	o.logger().Warn(msg, zap.Int("count", len(keys)), zap.Strings("keys", keys))
}
