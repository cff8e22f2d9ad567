package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/peterbourgon/diskv/v3"
)

// Cache is the on-disk store of API responses. Entries never expire; the store is only ever
// cleared as a whole.
type Cache struct {
	d *diskv.Diskv
}

// New returns a cache storing its entries as flat files in dir. The directory is created on the
// first write.
func New(dir string) *Cache {
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:  dir,
			Transform: func(string) []string { return []string{} },
		}),
	}
}

// Get returns the cached body for key, if any.
func (c *Cache) Get(key string) ([]byte, bool) {
	k := hash(key)
	if !c.d.Has(k) {
		return nil, false
	}
	b, err := c.d.Read(k)
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores body under key, replacing any previous entry.
func (c *Cache) Set(key string, body []byte) error {
	return c.d.Write(hash(key), body)
}

// Clear removes every entry from the cache.
func (c *Cache) Clear() error {
	return c.d.EraseAll()
}

// hash derives a filename-safe key from an arbitrary one such as a request URL.
func hash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
