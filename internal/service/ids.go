package service

import (
	"strconv"
	"sync/atomic"
	"time"
)

var idCounter int64

// newID produces a time-derived decimal id. The counter keeps ids unique
// when several are generated within the same millisecond.
func newID() string {
	millis := time.Now().UnixMilli()
	seq := atomic.AddInt64(&idCounter, 1)
	return strconv.FormatInt(millis*1000+seq%1000, 10)
}
