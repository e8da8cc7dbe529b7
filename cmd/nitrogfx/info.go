package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gravestench/nitrogfx/pkg"
)

type job struct {
	idx  int
	path string
}

// describeFiles summarises every file using a fixed number of workers. Each
// worker writes only its own slots of the result slice.
func describeFiles(paths []string, workers int, opts []pkg.Option, logger zerolog.Logger) ([]string, error) {
	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	results := make([]string, len(paths))

	jobs := queueJobs(ctx, paths)

	errcList := make([]<-chan error, 0, workers)
	for i := 0; i < workers; i++ {
		errcList = append(errcList, describeWorker(ctx, jobs, results, opts, logger))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	return results, nil
}

func queueJobs(ctx context.Context, paths []string) <-chan job {
	out := make(chan job)

	go func() {
		defer close(out)

		for idx, path := range paths {
			select {
			case out <- job{idx: idx, path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func describeWorker(ctx context.Context, in <-chan job, results []string, opts []pkg.Option, logger zerolog.Logger) <-chan error {
	errc := make(chan error, 1)

	go func() {
		defer close(errc)

		for j := range in {
			if ctx.Err() != nil {
				return
			}

			logger.Debug().Str("file", j.path).Msg("decoding")

			res, err := loadResource(j.path)
			if err != nil {
				errc <- err
				return
			}

			logger.Debug().
				Str("file", j.path).
				Stringer("magic", res.header.Magic).
				Bool("compressed", res.compressed).
				Int("size", len(res.data)).
				Msg("loaded")

			line, err := res.summary(opts)
			if err != nil {
				errc <- err
				return
			}

			results[j.idx] = j.path + ": " + line
		}
	}()

	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}

	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup

	out := make(chan error, len(cs))

	wg.Add(len(cs))

	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
