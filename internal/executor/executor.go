// Package executor fans pure CPU-bound tasks out over a worker pool sized
// to host parallelism and aggregates results keyed by task id.
package executor

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// progressEvery controls how often completed-task counts are logged.
const progressEvery = 16

// Collect maps fn over keys on a worker pool and gathers the results into
// a map keyed by task key, in arbitrary completion order. Tasks must be
// pure: they share no mutable state and run to completion. A task error
// fails the whole collection, wrapped with the offending key.
func Collect[K comparable, V any](keys []K, fn func(K) (V, error), log *logrus.Logger) (map[K]V, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	total := len(keys)
	log.WithFields(logrus.Fields{"tasks": total, "workers": runtime.NumCPU()}).Info("dispatching tasks")

	var (
		mu   sync.Mutex
		done atomic.Int64
	)
	out := make(map[K]V, total)

	p := pool.New().WithMaxGoroutines(runtime.NumCPU()).WithErrors()
	for _, key := range keys {
		key := key
		p.Go(func() error {
			v, err := fn(key)
			if err != nil {
				return errors.Wrapf(err, "task %v", key)
			}
			mu.Lock()
			out[key] = v
			mu.Unlock()
			if n := done.Add(1); n%progressEvery == 0 || n == int64(total) {
				log.WithFields(logrus.Fields{"done": n, "total": total}).Info("tasks completed")
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
