// Package cache holds a global object cache for expensive-to-build objects,
// mainly affinity graphs. Building a graph from a large corpus is the slow
// path of this program; callers that reload the same corpus (the shell, a
// server embedding the library) should go through here.
package cache

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object for a key on a cache miss.
type LoadFunc func(key string) (any, error)

var globalObjectCache *cache
var createOnce sync.Once

func (c *cache) get(key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load fetches the object for key, building it with loadFunc if it is not
// cached yet.
func Load(key string, loadFunc LoadFunc) (any, error) {
	createOnce.Do(func() {
		globalObjectCache = &cache{objects: make(map[string]any)}
	})
	return globalObjectCache.get(key, loadFunc)
}

// Fingerprint returns a short hex digest of data, for use in cache keys so
// that stale objects are not served after their source bytes change.
func Fingerprint(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
