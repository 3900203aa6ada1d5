package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/golden-sieve/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(NewSetProgress(0.1))
	q.Push(NewTriggerFlare())
	q.Push(NewSetProgress(0.2))
	require.Equal(t, 3, q.Len())

	got := q.Consume(nil)
	require.Len(t, got, 3)
	assert.Equal(t, SetProgress, got[0].Type)
	assert.Equal(t, 0.1, got[0].Payload)
	assert.Equal(t, TriggerFlare, got[1].Type)
	assert.Equal(t, 0.2, got[2].Payload)

	assert.Zero(t, q.Len())
	assert.Empty(t, q.Consume(nil))
}

func TestQueueConsumeReusesBuffer(t *testing.T) {
	q := NewQueue()
	buf := make([]Command, 0, 8)
	q.Push(NewTriggerAvalanche())
	buf = q.Consume(buf[:0])
	require.Len(t, buf, 1)
	q.Push(NewSnapToPhi())
	buf = q.Consume(buf[:0])
	require.Len(t, buf, 1)
	assert.Equal(t, SnapToPhi, buf[0].Type)
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := parameter.CommandQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(NewSetProgress(float64(i)))
	}
	assert.Equal(t, parameter.CommandQueueSize, q.Len())

	got := q.Consume(nil)
	require.Len(t, got, parameter.CommandQueueSize)
	assert.Equal(t, float64(10), got[0].Payload)
	assert.Equal(t, float64(total-1), got[len(got)-1].Payload)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, each = 4, 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(NewTriggerFlare())
			}
		}()
	}
	wg.Wait()

	got := q.Consume(nil)
	assert.Len(t, got, producers*each)
}

func TestQueueSlotsReusableAcrossLaps(t *testing.T) {
	q := NewQueue()
	for lap := 0; lap < 3; lap++ {
		for i := 0; i < parameter.CommandQueueSize-1; i++ {
			q.Push(NewSetProgress(float64(lap*1000 + i)))
		}
		got := q.Consume(nil)
		require.Len(t, got, parameter.CommandQueueSize-1, "lap %d", lap)
		assert.Equal(t, float64(lap*1000), got[0].Payload)
		assert.Empty(t, q.Consume(nil))
	}
}

func TestQueueConsumeAfterPartialDrainOverflow(t *testing.T) {
	q := NewQueue()
	q.Push(NewTriggerFlare())
	require.Len(t, q.Consume(nil), 1)

	// a full lap lands on the slot the consumer just read
	for i := 0; i <= parameter.CommandQueueSize; i++ {
		q.Push(NewSetProgress(float64(i)))
	}
	got := q.Consume(nil)
	require.Len(t, got, parameter.CommandQueueSize)
	assert.Equal(t, float64(1), got[0].Payload)
	assert.Equal(t, float64(parameter.CommandQueueSize), got[len(got)-1].Payload)
}

func TestQueueConcurrentOverflowKeepsProducerOrder(t *testing.T) {
	q := NewQueue()
	const producers, each = 8, parameter.CommandQueueSize

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(NewSetProgress(float64(p*each + i)))
			}
		}(p)
	}
	wg.Wait()

	got := q.Consume(nil)
	assert.LessOrEqual(t, len(got), parameter.CommandQueueSize)

	last := make(map[int]float64)
	for _, cmd := range got {
		v := cmd.Payload.(float64)
		p := int(v) / each
		if prev, ok := last[p]; ok {
			assert.Greater(t, v, prev, "producer %d out of order", p)
		}
		last[p] = v
	}
	assert.Empty(t, q.Consume(nil))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "set-progress", SetProgress.String())
	assert.Equal(t, "set-automatic-advancement", SetAutoAdvance.String())
	assert.Equal(t, "unknown", Type(0).String())
}
