// Package store provides the underlying interface and glue for the track storage drivers.
//
// A Store owns the full track collection for the lifetime of the process. The default
// memory driver keeps everything in process, the other drivers persist to an external
// service but must honour the same ordering and identifier rules:
//
//   - All returns tracks in insertion order
//   - Create assigns the largest known id + 1, or 1 for an empty collection
//   - Add keeps the id it is given and rejects duplicates with consts.ErrDuplicate
package store

import (
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	log "github.com/sirupsen/logrus"
	"sort"
	"sync"
)

var (
	driversMu = sync.RWMutex{}
	drivers   = make(map[string]Driver)
)

// Driver is implemented by each backing store and is used to instantiate a new Store
type Driver interface {
	New(cfg *config.StoreConfig) (Store, error)
}

// AddDriver will register a new driver able to instantiate a Store
func AddDriver(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[name] = driver
	log.Debugf("Registered track storage driver: %s", name)
}

// Drivers returns the sorted names of all registered drivers
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	var names []string
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store defines where the track collection lives
type Store interface {
	// Add inserts the track with the id it already has. A zero id is replaced
	// with the next available id.
	Add(track *model.Track) error
	// Create assigns the next available id to the track and inserts it
	Create(track *model.Track) error
	// Get fills track with the entry matching trackID, consts.ErrTrackNotFound on failed lookup
	Get(track *model.Track, trackID int64) error
	// All returns every known track in insertion order
	All() ([]model.Track, error)
	// Name returns the name of the driver
	Name() string
	// Close should cleanup and close the underlying storage driver
	Close() error
}

// NewStore will attempt to initialize a Store using the driver name provided
func NewStore(cfg *config.StoreConfig) (Store, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	driver, found := drivers[cfg.Type]
	if !found {
		return nil, consts.ErrInvalidDriver
	}
	return driver.New(cfg)
}
