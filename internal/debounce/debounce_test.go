package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/aisle/internal/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDelay = 30 * time.Millisecond

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_EmitsOnlyLastValue(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(testDelay, rec.emit)
	defer d.Stop()

	for _, v := range []string{"p", "ph", "pho", "phon", "phone"} {
		d.Set(v)
	}

	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"phone"}, rec.get())

	// Nothing else trickles out afterwards
	assert.Never(t, func() bool { return len(rec.get()) > 1 }, 4*testDelay, 10*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsEmitEach(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(testDelay, rec.emit)
	defer d.Stop()

	d.Set("lap")
	d.Set("laptop")
	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)

	d.Set("mouse")
	require.Eventually(t, func() bool { return len(rec.get()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"laptop", "mouse"}, rec.get())
}

func TestDebouncer_WaitsForQuietPeriod(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(100*time.Millisecond, rec.emit)
	defer d.Stop()

	d.Set("a")
	time.Sleep(40 * time.Millisecond)
	d.Set("ab")
	time.Sleep(40 * time.Millisecond)

	// 80ms since the first Set, but only 40ms since the last change
	assert.Empty(t, rec.get())
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ab"}, rec.get())
}

func TestDebouncer_Stop(t *testing.T) {
	t.Run("cancels pending emission", func(t *testing.T) {
		rec := &recorder{}
		d := debounce.New(testDelay, rec.emit)

		d.Set("phone")
		d.Stop()

		assert.Never(t, func() bool { return len(rec.get()) > 0 }, 4*testDelay, 10*time.Millisecond)
		assert.False(t, d.Pending())
	})

	t.Run("ignores values set afterwards", func(t *testing.T) {
		rec := &recorder{}
		d := debounce.New(testDelay, rec.emit)
		d.Stop()

		d.Set("late")
		d.Flush()

		assert.Never(t, func() bool { return len(rec.get()) > 0 }, 4*testDelay, 10*time.Millisecond)
	})

	t.Run("is safe to call twice", func(t *testing.T) {
		d := debounce.New(testDelay, func(string) {})
		d.Stop()
		d.Stop()
	})
}

func TestDebouncer_Cancel(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(testDelay, rec.emit)
	defer d.Stop()

	d.Set("phone")
	d.Cancel()
	assert.False(t, d.Pending())

	d.Flush()
	assert.Never(t, func() bool { return len(rec.get()) > 0 }, 4*testDelay, 10*time.Millisecond)

	d.Set("laptop")
	assert.Eventually(t, func() bool { return len(rec.get()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"laptop"}, rec.get())
}

func TestDebouncer_Flush(t *testing.T) {
	rec := &recorder{}
	d := debounce.New(time.Hour, rec.emit)
	defer d.Stop()

	d.Set("tablet")
	d.Flush()

	assert.Equal(t, []string{"tablet"}, rec.get())
	assert.False(t, d.Pending())

	// Nothing pending: no-op
	d.Flush()
	assert.Equal(t, []string{"tablet"}, rec.get())
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := debounce.New(0, func(int) {})
	defer d.Stop()

	assert.Equal(t, debounce.DefaultDelay, d.Delay())
	assert.Equal(t, 500*time.Millisecond, debounce.DefaultDelay)
}
