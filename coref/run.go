package coref

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

// ResolveAll resolves docs with at most workers documents in flight.
// Results come back in input order. Any failure cancels the rest and
// no partial results are returned.
func ResolveAll(ctx context.Context, sys System, docs []*doc.Document, workers int) ([][]cluster.ClusteredMention, error) {
	if workers < 1 {
		workers = 1
	}
	log := logger.ComponentLogger("runner")
	start := time.Now()

	results := make([][]cluster.ClusteredMention, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assignments, err := sys.Resolve(gctx, d)
			if err != nil {
				return errors.Wrapf(err, "resolve document %s", d.ID)
			}
			if err := cluster.Verify(d, assignments); err != nil {
				return errors.Wrapf(err, "%s produced an invalid partition", sys.Name())
			}
			results[i] = assignments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "resolve cancelled")
	}

	log.Infow("Resolved corpus",
		logger.FieldAlgorithm, sys.Name(),
		logger.FieldCount, len(docs),
		"workers", workers,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return results, nil
}
