// Package spin provides the atomic test-and-set primitive and a spin lock
// built on it. There is no queueing and no fairness; the lock only gives
// mutual exclusion on the flag itself.
package spin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// TestAndSet atomically stores 1 into *p and reports whether the previous
// value was 0. Exactly one of any number of concurrent callers on a
// cleared cell observes true.
func TestAndSet(p *int32) bool {
	return atomic.SwapInt32(p, 1) == 0
}

// Flag is a test-and-set cell. The zero value is clear.
type Flag struct {
	v atomic.Int32
}

// TestAndSet sets the flag and reports whether it was clear before.
func (f *Flag) TestAndSet() bool { return f.v.Swap(1) == 0 }

// Clear resets the flag.
func (f *Flag) Clear() { f.v.Store(0) }

// IsSet reports the current state without modifying it.
func (f *Flag) IsSet() bool { return f.v.Load() != 0 }

// Lock is a sync.Locker spinning on a Flag. The zero value is unlocked.
// It must not be copied after first use.
type Lock struct {
	flag Flag
}

var _ sync.Locker = (*Lock)(nil)

// spinsBeforeYield bounds busy polling before handing the P back to the
// scheduler.
const spinsBeforeYield = 32

// Lock spins until it acquires the lock, yielding the processor every
// spinsBeforeYield failed attempts.
func (l *Lock) Lock() {
	for spins := 0; ; spins++ {
		// read first so waiters don't hammer the cache line with swaps
		if !l.flag.IsSet() && l.flag.TestAndSet() {
			return
		}
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires the lock only if it is free and reports success.
func (l *Lock) TryLock() bool {
	return l.flag.TestAndSet()
}

// Unlock releases the lock. Unlocking an unlocked Lock is a no-op.
func (l *Lock) Unlock() {
	l.flag.Clear()
}
