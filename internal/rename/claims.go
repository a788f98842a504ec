package rename

import "sync"

// claimSet tracks target paths taken during one run so two workers never
// rename onto the same name. All methods are goroutine-safe.
type claimSet struct {
	mu     sync.Mutex
	owners map[string]string // target path → source path that owns it
}

func newClaimSet() *claimSet {
	return &claimSet{owners: make(map[string]string)}
}

// claim reserves target for src. It returns false when another source
// already holds it.
func (c *claimSet) claim(target, src string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if owner, ok := c.owners[target]; ok && owner != src {
		return false
	}
	c.owners[target] = src
	return true
}

// release drops src's claim on target after a failed mutation.
func (c *claimSet) release(target, src string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.owners[target] == src {
		delete(c.owners, target)
	}
}
