package EdgeList

import "path/filepath"

// Cache is a single-slot memo of the last loaded graph. Storing a different
// path replaces the entry. A Cache is not safe for concurrent use.
type Cache struct {
	path         string
	list         CoordinateList
	valid        bool
	hits, misses int
}

func NewCache() *Cache {
	return &Cache{}
}

func cacheKey(path string) string {
	return filepath.Clean(path)
}

// Lookup returns the cached list if path names the cached entry.
func (c *Cache) Lookup(path string) (CoordinateList, bool) {
	if c.valid && c.path == cacheKey(path) {
		c.hits++
		return c.list, true
	}
	c.misses++
	return CoordinateList{}, false
}

func (c *Cache) Store(path string, list CoordinateList) {
	c.path = cacheKey(path)
	c.list = list
	c.valid = true
}

// Path reports the key of the cached entry, if any.
func (c *Cache) Path() (string, bool) {
	return c.path, c.valid
}

func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
