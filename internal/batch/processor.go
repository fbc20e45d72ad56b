// Package batch retargets a list of BVH files onto their base motions
// with a worker pool.
package batch

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mot-retarget/internal/axis"
	"mot-retarget/internal/bvh"
	"mot-retarget/internal/joblist"
	"mot-retarget/internal/motion"
	"mot-retarget/internal/plot"
	"mot-retarget/internal/retarget"
)

// Config holds all shared resources for a batch run. The databases are
// only read, so every worker shares them.
type Config struct {
	OutputDir string
	Names     retarget.BoneNames
	Classify  retarget.Classifier
	Options   retarget.Options
	Order     binary.ByteOrder
	Bvh       bvh.Options
	Workers   int

	// Preview, when non-empty, is the image extension (".webp" or ".tga")
	// of a curve preview written next to every output.
	Preview     string
	PreviewSize int
}

// Result holds the outcome of processing one job.
type Result struct {
	Name     string
	Output   string
	Preview  string
	Success  bool
	Error    string
	Frames   int
	Applied  int
	Skipped  []string
	Excluded int
}

// Run processes all jobs using a worker pool. Results are indexed like jobs.
func Run(cfg Config, jobs []joblist.Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f jobs/sec\n", p, total, rate)
				}
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job joblist.Job) Result {
	res := Result{Name: job.Name, Output: outputPath(cfg.OutputDir, job.Output)}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	opts := cfg.Options
	if job.Directive != "" {
		d, err := axis.Parse(job.Directive)
		if err != nil {
			return fail(fmt.Errorf("orientation: %w", err))
		}
		opts.Directive = d
	}

	src, err := bvh.ParseFile(job.Bvh, cfg.Bvh)
	if err != nil {
		return fail(err)
	}
	m, err := motion.Load(job.Motion, cfg.Order)
	if err != nil {
		return fail(err)
	}

	rep, err := retarget.New(cfg.Names, cfg.Classify, opts).Run(src, m)
	if err != nil {
		return fail(err)
	}
	res.Frames = rep.Frames
	res.Applied = len(rep.Applied)
	res.Skipped = rep.SkippedNames()
	res.Excluded = len(rep.Excluded)

	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		return fail(err)
	}
	if err := motion.Save(res.Output, m, cfg.Order); err != nil {
		return fail(err)
	}

	if cfg.Preview != "" {
		po := plot.DefaultOptions()
		if cfg.PreviewSize > 0 {
			po.Size = cfg.PreviewSize
		}
		po.AnimatedOnly = true
		img, err := plot.Render(m, po)
		if err != nil {
			return fail(err)
		}
		res.Preview = strings.TrimSuffix(res.Output, filepath.Ext(res.Output)) + cfg.Preview
		if err := plot.Save(res.Preview, img); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// outputPath places a relative job output under dir; absolute outputs are kept.
func outputPath(dir, out string) string {
	if dir == "" || filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(dir, out)
}

// EnsureOutputDir creates the output directory of a run.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", dir, err)
	}
	return nil
}
