package ticker

import (
	"errors"
	"sync"
	"time"
)

var ErrDriverClosed = errors.New("ticker: driver closed")

// Tick is one beat for the handle identified by Key and Seq.
type Tick struct {
	Key string
	Seq uint64
	At  time.Time
}

type handle struct {
	seq    uint64
	stopCh chan struct{}
	doneCh chan struct{}
}

// Driver owns at most one recurring tick goroutine per key. Starting a key that
// already has a handle cancels the old one first, so a key never has two live
// handles. Consumers compare Tick.Seq with the value returned by Start to discard
// beats that were already in flight when the handle was replaced.
type Driver struct {
	mu       sync.Mutex
	interval time.Duration
	out      chan Tick
	handles  map[string]*handle
	nextSeq  uint64
	closed   bool
	wg       sync.WaitGroup
}

func NewDriver(interval time.Duration, bufferSize int) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Driver{
		interval: interval,
		out:      make(chan Tick, bufferSize),
		handles:  make(map[string]*handle),
	}
}

func (d *Driver) C() <-chan Tick {
	return d.out
}

// Start replaces the handle for key and returns its sequence number.
func (d *Driver) Start(key string) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrDriverClosed
	}
	d.cancelLocked(key)

	d.nextSeq++
	h := &handle{
		seq:    d.nextSeq,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	d.handles[key] = h
	d.wg.Add(1)
	go d.loop(key, h)
	return h.seq, nil
}

// Stop cancels the handle for key. It returns once the goroutine has exited.
func (d *Driver) Stop(key string) {
	d.mu.Lock()
	h := d.handles[key]
	delete(d.handles, key)
	d.mu.Unlock()
	if h != nil {
		close(h.stopCh)
		<-h.doneCh
	}
}

// Active reports the sequence of the live handle for key.
func (d *Driver) Active(key string) (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.handles[key]
	if !ok {
		return 0, false
	}
	return h.seq, true
}

func (d *Driver) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}

// Close cancels every handle, waits for the goroutines and closes C.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for key := range d.handles {
		d.cancelLocked(key)
	}
	d.mu.Unlock()

	d.wg.Wait()
	close(d.out)
}

// cancelLocked signals the handle without waiting; the loop never takes d.mu.
func (d *Driver) cancelLocked(key string) {
	h, ok := d.handles[key]
	if !ok {
		return
	}
	delete(d.handles, key)
	close(h.stopCh)
}

func (d *Driver) loop(key string, h *handle) {
	defer d.wg.Done()
	defer close(h.doneCh)

	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case at := <-t.C:
			select {
			case d.out <- Tick{Key: key, Seq: h.seq, At: at}:
			case <-h.stopCh:
				return
			}
		case <-h.stopCh:
			return
		}
	}
}
