package metrics

import "sync/atomic"

type atomicInt64 struct {
	int64
}

func (c *atomicInt64) Add(v int64)    { atomic.AddInt64(&c.int64, v) }
func (c *atomicInt64) Get() int64     { return atomic.LoadInt64(&c.int64) }
func (c *atomicInt64) Update(v int64) { atomic.StoreInt64(&c.int64, v) }

type atomicUint64 struct {
	uint64
}

func (c *atomicUint64) Add(v uint64)    { atomic.AddUint64(&c.uint64, v) }
func (c *atomicUint64) Get() uint64     { return atomic.LoadUint64(&c.uint64) }
func (c *atomicUint64) Update(v uint64) { atomic.StoreUint64(&c.uint64, v) }

func (c *atomicUint64) storeMin(v uint64) {
	for {
		cur := atomic.LoadUint64(&c.uint64)

		if v >= cur || atomic.CompareAndSwapUint64(&c.uint64, cur, v) {
			return
		}
	}
}

func (c *atomicUint64) storeMax(v uint64) {
	for {
		cur := atomic.LoadUint64(&c.uint64)

		if v <= cur || atomic.CompareAndSwapUint64(&c.uint64, cur, v) {
			return
		}
	}
}
