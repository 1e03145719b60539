// Package keylock serialises work on named keys. A Locker grants exclusive
// access to a set of keys; callers release it with the returned func.
package keylock

import (
	"context"
	"errors"
	"slices"
)

// ErrNoKeys is returned when Lock is called without keys.
var ErrNoKeys = errors.New("keylock: no keys")

// Locker acquires exclusive ownership of every key in keys. Keys are taken
// in sorted order so two callers locking overlapping sets cannot deadlock.
// Lock blocks until all keys are held or ctx is done.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (func(), error)
}

// normalise sorts keys and removes duplicates and empties.
func normalise(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// lockAll takes each key in order with acquire, releasing whatever was
// already held if one fails.
func lockAll(ctx context.Context, keys []string, acquire func(context.Context, string) (func(), error)) (func(), error) {
	keys = normalise(keys)
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}

	held := make([]func(), 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}

	for _, k := range keys {
		unlock, err := acquire(ctx, k)
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, unlock)
	}
	return release, nil
}
