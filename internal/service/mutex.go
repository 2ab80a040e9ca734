package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// keyedMutex hands out one mutex per key. Used to serialize in-process
// multi-step operations on the same room on top of the database row locks.
type keyedMutex struct {
	mutexes sync.Map
}

func (k *keyedMutex) get(id uuid.UUID) *sync.Mutex {
	value, _ := k.mutexes.LoadOrStore(id.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// lock acquires the mutex for id and returns the unlock function.
func (k *keyedMutex) lock(id uuid.UUID) func() {
	mu := k.get(id)
	mu.Lock()
	return mu.Unlock
}

// lockPair acquires both mutexes in ID order so concurrent relocations
// touching the same two rooms cannot deadlock.
func (k *keyedMutex) lockPair(a, b uuid.UUID) func() {
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	muA, muB := k.get(a), k.get(b)
	muA.Lock()
	muB.Lock()
	return func() {
		muB.Unlock()
		muA.Unlock()
	}
}
