package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutLatestWins(t *testing.T) {
	mb := New[int]()
	mb.Put(1)
	mb.Put(2)
	mb.Put(3)

	require.True(t, mb.HasJob())
	v, ok := mb.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, mb.HasJob())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok = mb.Take(ctx)
	assert.False(t, ok)
}

func TestTakeBlocksUntilPut(t *testing.T) {
	mb := New[string]()
	got := make(chan string, 1)

	go func() {
		v, _ := mb.Take(context.Background())
		got <- v
	}()

	time.Sleep(20 * time.Millisecond)
	mb.Put("change")

	select {
	case v := <-got:
		assert.Equal(t, "change", v)
	case <-time.After(time.Second):
		t.Fatal("Take did not return")
	}
}

func TestTakeReturnsOnCancel(t *testing.T) {
	mb := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := mb.Take(ctx)
	assert.False(t, ok)
}
