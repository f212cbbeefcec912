package resultcache

import "sync"

// Result is the outcome of the most recent pipeline run. Empty strings mean
// the corresponding stage did not produce text; on translation failure the
// error message is stored in Translated so a deferred viewer can show it.
type Result struct {
	Original   string
	Translated string
	ImagePath  string
}

// Cache is a single-slot overwrite store for the last Result. It is written
// once per completed pipeline run (even on partial failure) and read by
// deferred "show results" requests that do not re-run the pipeline.
type Cache struct {
	mu  sync.Mutex
	res *Result
}

// Store overwrites the cached result wholesale.
func (c *Cache) Store(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.res = &res
}

// Load returns the last result, if any pipeline run has completed.
func (c *Cache) Load() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.res == nil {
		return Result{}, false
	}
	return *c.res, true
}
