package cache

import (
	"errors"
	"sync"

	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

const (
	megabyte           = 1024 * 1024
	workoutsKeyPrefix  = "workouts::"
	defaultTTLSeconds  = 60
	defaultCacheSizeMB = 64
)

// WorkoutsCache holds the serialized GET /workouts response per user.
// Any workout mutation for a user must call Invalidate.
//
// Each user has a generation that Invalidate bumps. Readers pass the
// generation they saw on Get back to Set, and a list read before a mutation
// is never stored after it.
type WorkoutsCache struct {
	cache          *freecache.Cache
	ttlSeconds     int
	metricsManager *metrics.Manager

	mutex       sync.Mutex
	generations map[string]uint64
}

func NewWorkoutsCache(sizeMB, ttlSeconds int, metricsManager *metrics.Manager) *WorkoutsCache {
	if sizeMB <= 0 {
		sizeMB = defaultCacheSizeMB
	}
	if ttlSeconds <= 0 {
		ttlSeconds = defaultTTLSeconds
	}
	return &WorkoutsCache{
		cache:          freecache.NewCache(sizeMB * megabyte),
		ttlSeconds:     ttlSeconds,
		metricsManager: metricsManager,
		generations:    make(map[string]uint64),
	}
}

// Get returns the cached list, if any, and the user's current generation.
func (c *WorkoutsCache) Get(userID string) ([]byte, uint64, bool) {
	c.mutex.Lock()
	generation := c.generations[userID]
	data, err := c.cache.Get(workoutsKey(userID))
	c.mutex.Unlock()

	if err != nil {
		c.observe("miss")
		return nil, generation, false
	}
	c.observe("hit")
	return data, generation, true
}

// Set stores data only if no Invalidate happened since the Get that returned generation.
func (c *WorkoutsCache) Set(userID string, generation uint64, data []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.generations[userID] != generation {
		c.observe("stale")
		return
	}

	err := c.cache.Set(workoutsKey(userID), data, c.ttlSeconds)
	switch {
	case errors.Is(err, freecache.ErrLargeEntry):
		c.observe("too_large")
		log.Debugf("workouts cache: list of user %s too large (%d bytes)", userID, len(data))
	case err != nil:
		log.Errorf("workouts cache set for user %s: %s", userID, err)
	}
}

func (c *WorkoutsCache) Invalidate(userID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.generations[userID]++
	c.cache.Del(workoutsKey(userID))
}

func (c *WorkoutsCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

func (c *WorkoutsCache) observe(result string) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterWorkoutsCacheHits.With(prometheus.Labels{"result": result}).Inc()
}

func workoutsKey(userID string) []byte {
	return []byte(workoutsKeyPrefix + userID)
}
