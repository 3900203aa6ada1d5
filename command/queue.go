package command

import (
	"sync/atomic"

	"github.com/lixenwraith/golden-sieve/parameter"
)

// Queue is a lock-free MPSC ring buffer for inbound commands
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (tick driver)
//   - Each slot carries the sequence of the write that filled it; a slot is
//     readable at position n only when its stamp is n+1, so no flag is ever cleared
//
// Overflow: Oldest commands overwritten when full
type Queue struct {
	commands [parameter.CommandQueueSize]Command
	stamps   [parameter.CommandQueueSize]atomic.Uint64 // position+1 of the last completed write
	head     atomic.Uint64                             // Read index
	tail     atomic.Uint64                             // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push claims a position by CAS on tail, writes, then stamps the slot
func (q *Queue) Push(cmd Command) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.CommandBufferMask

			q.commands[idx] = cmd
			q.stamps[idx].Store(nextTail) // MUST be after write

			// Advance head if overwriting unread commands
			for {
				currentHead := q.head.Load()
				if nextTail-currentHead <= parameter.CommandQueueSize {
					break
				}
				if q.head.CompareAndSwap(currentHead, nextTail-parameter.CommandQueueSize) {
					break
				}
			}
			return
		}
	}
}

// Consume appends all pending commands in FIFO order to dst and advances head
// Reusing dst across ticks keeps the tick path allocation-free
// A slot whose stamp does not match its position is either still being written
// or already overwritten; reading stops there and resumes on the next call
func (q *Queue) Consume(dst []Command) []Command {
	for {
		loadedHead := q.head.Load()
		currentHead := loadedHead
		currentTail := q.tail.Load()

		if currentTail <= currentHead {
			return dst
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.CommandQueueSize {
			maxAvailable = parameter.CommandQueueSize
			currentHead = currentTail - parameter.CommandQueueSize
		}

		start := len(dst)
		for i := uint64(0); i < maxAvailable; i++ {
			pos := currentHead + i
			idx := pos & parameter.CommandBufferMask

			if q.stamps[idx].Load() != pos+1 {
				break
			}
			dst = append(dst, q.commands[idx])
		}

		newHead := currentHead + uint64(len(dst)-start)
		if newHead == currentHead {
			return dst
		}
		// A producer that moved head meanwhile overwrote part of what was read
		if q.head.CompareAndSwap(loadedHead, newHead) {
			return dst
		}
		dst = dst[:start]
	}
}

// Len returns approximate pending command count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.CommandQueueSize {
		return parameter.CommandQueueSize
	}
	return diff
}
