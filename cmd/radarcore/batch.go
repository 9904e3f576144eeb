package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wxradar/radarcore/internal/settings"
)

// runBatch fans a list of input files out across a bounded worker pool
// (grounded on sixy6e-go-gsf's cmd/main.go, which dispatches one GSF file
// per pond worker the same way). Each worker still runs the whole
// dealias->superob pipeline for its file start to finish, one file at a
// time: the pool only parallelizes across files, matching spec section 5's
// "single-threaded, cooperative-free per input file" rule for the core
// itself. A Ctrl+C during a batch run lets in-flight files finish rather
// than abandoning them mid-write.
func runBatch(paths []string, cfg *settings.Settings, workers int, dryRun bool) []fileResult {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool := pond.New(workers, 0, pond.MinWorkers(workers), pond.Context(ctx))
	defer pool.StopAndWait()

	results := make([]fileResult, len(paths))
	var mu sync.Mutex

	for i, p := range paths {
		i, p := i, p
		pool.Submit(func() {
			runID := uuid.New().String()
			log := logrus.WithFields(logrus.Fields{"run_id": runID, "file": p})
			log.Info("processing file")

			res := runFile(p, cfg, dryRun)

			mu.Lock()
			results[i] = res
			mu.Unlock()

			if res.fatal != nil {
				log.WithError(res.fatal).Error("file aborted")
			} else {
				log.Info("file complete")
			}
		})
	}

	return results
}
