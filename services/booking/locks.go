package booking

import "sync"

// keyedMutex serializes slot mutation per business so two concurrent
// requests cannot both observe a free slot and both commit. Entries are
// never evicted; one mutex per active business is cheap.
type keyedMutex struct {
	mu sync.Map // businessID -> *sync.Mutex
}

// Lock acquires the business's mutex and returns the unlock func.
func (k *keyedMutex) Lock(businessID string) func() {
	v, _ := k.mu.LoadOrStore(businessID, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
