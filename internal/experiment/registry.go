package experiment

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
)

// registry keeps recordings loaded by earlier runs so the three axes of a
// sensor file are parsed once per batch.
type registry struct {
	store *dataset.Store
	group singleflight.Group

	mu     sync.RWMutex
	loaded map[string]*dataset.Recording
}

func newRegistry(store *dataset.Store) *registry {
	return &registry{store: store, loaded: make(map[string]*dataset.Recording)}
}

func (r *registry) recording(game, sensor string) (*dataset.Recording, error) {
	key := game + sensor

	r.mu.RLock()
	rec, ok := r.loaded[key]
	r.mu.RUnlock()
	if ok {
		return rec, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		rec, err := r.store.Load(game, sensor)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.loaded[key] = rec
		r.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Recording), nil
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loaded)
}
