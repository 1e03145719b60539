package keylock

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var (
	_ Locker = (*Memory)(nil)
	_ Locker = (*Redis)(nil)
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client, WithRetryDelay(5*time.Millisecond), WithTTL(time.Minute)), mr
}

func lockers(t *testing.T) map[string]Locker {
	r, _ := newTestRedis(t)
	return map[string]Locker{
		"memory": NewMemory(),
		"redis":  r,
	}
}

func TestLockSerialisesSameKey(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var inside, maxInside atomic.Int32
			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					unlock, err := l.Lock(ctx, "agent:1")
					if err != nil {
						t.Error(err)
						return
					}
					defer unlock()

					n := inside.Add(1)
					for {
						m := maxInside.Load()
						if n <= m || maxInside.CompareAndSwap(m, n) {
							break
						}
					}
					time.Sleep(2 * time.Millisecond)
					inside.Add(-1)
				}()
			}
			wg.Wait()
			require.Equal(t, int32(1), maxInside.Load())
		})
	}
}

func TestLockRespectsContext(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			unlock, err := l.Lock(context.Background(), "a", "b")
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()
			_, err = l.Lock(ctx, "b", "c")
			require.ErrorIs(t, err, context.DeadlineExceeded)

			// "c" must not stay held after the failed attempt.
			unlockC, err := l.Lock(context.Background(), "c")
			require.NoError(t, err)
			unlockC()

			unlock()
			unlock2, err := l.Lock(context.Background(), "b", "a")
			require.NoError(t, err)
			unlock2()
		})
	}
}

func TestLockRequiresKeys(t *testing.T) {
	_, err := NewMemory().Lock(context.Background(), "", "")
	require.ErrorIs(t, err, ErrNoKeys)
}

func TestMemoryForgetsReleasedKeys(t *testing.T) {
	m := NewMemory()
	unlock, err := m.Lock(context.Background(), "x", "y", "x")
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	unlock()
	unlock()
	require.Equal(t, 0, m.Len())
}

func TestRedisLockExpires(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	_, err := r.Lock(ctx, "agent:9")
	require.NoError(t, err)
	require.True(t, mr.Exists(defaultPrefix+"agent:9"))

	mr.FastForward(2 * time.Minute)

	unlock, err := r.Lock(ctx, "agent:9")
	require.NoError(t, err)
	unlock()
	require.False(t, mr.Exists(defaultPrefix+"agent:9"))
}

func TestRedisLogsFailedRelease(t *testing.T) {
	r, mr := newTestRedis(t)

	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	unlock, err := r.Lock(ctx, "agent:3")
	require.NoError(t, err)

	mr.SetError("ERR read only replica")
	unlock()
	mr.SetError("")

	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "keylock: release failed")
	require.Contains(t, buf.String(), defaultPrefix+"agent:3")

	// The key is left to expire
	require.True(t, mr.Exists(defaultPrefix+"agent:3"))
}
