// Command geomq runs batches of geometry queries described in a TOML job
// file and writes a TOML report to stdout. Jobs can also render their result
// to PNG or save triangulations as PLY or DXF meshes.
//
// Usage:
//
//	geomq [-j n] [-v] jobs.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/smasonuk/gosiegeom"
	"golang.org/x/sync/errgroup"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// runJobs executes the jobs with at most parallel running at once. Results
// keep the job order.
func runJobs(ctx context.Context, jobs []job, parallel int) ([]result, error) {
	results := make([]result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i := range jobs {
		i := i
		g.Go(func() error {
			res, err := jobs[i].run(ctx)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func run(ctx context.Context, path string, parallel int, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open job file %s: %w", path, err)
	}
	defer f.Close()

	jf, err := readJobs(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("running jobs", "file", path, "jobs", len(jf.Jobs), "parallel", parallel)

	results, err := runJobs(ctx, jf.Jobs, parallel)
	if err != nil {
		return err
	}
	stats := gosiegeom.PredicateStats()
	logger.Debug("predicates", "filtered", stats.Filtered, "exact", stats.Exact)
	return toml.NewEncoder(out).Encode(report{Results: results})
}

func main() {
	parallel := flag.Int("j", runtime.NumCPU(), "number of jobs run at once")
	verbose := flag.Bool("v", false, "log debug records, including the geometry library's")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: geomq [-j n] [-v] jobs.toml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		gosiegeom.SetLogger(logger)
	}

	if err := run(context.Background(), flag.Arg(0), *parallel, os.Stdout); err != nil {
		logger.Error("geomq failed", "err", err)
		os.Exit(1)
	}
}
