package app

// TrackedSessions reports how many sessions hold bookkeeping.
func (c *Controller) TrackedSessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
