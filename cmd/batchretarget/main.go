package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mot-retarget/internal/batch"
	"mot-retarget/internal/bonedb"
	"mot-retarget/internal/bvh"
	"mot-retarget/internal/config"
	"mot-retarget/internal/joblist"
	"mot-retarget/internal/logging"
	"mot-retarget/internal/motdb"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	jobsFile := flag.String("jobs", "", "Path to jobs.xml")
	testN := flag.Int("test", 0, "Run only the first N jobs")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to base directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: rob/retargeted)")
	bigEndian := flag.Bool("be", false, "mot and mot_db files are big-endian")
	preview := flag.String("preview", "", "Write a curve preview per job with this extension (.webp or .tga)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	if *jobsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -jobs is required.")
		os.Exit(1)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		BigEndian: *bigEndian,
		Workers:   *workers,
	})

	if cfg.BaseDir == "" && (!filepath.IsAbs(cfg.MotDB) || !filepath.IsAbs(cfg.BoneDB)) {
		fmt.Fprintln(os.Stderr, "Error: cannot find rob/mot_db.bin. Use -data flag or a config file.")
		os.Exit(1)
	}

	jobs, err := joblist.Parse(*jobsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs to run.")
		os.Exit(0)
	}

	log := logging.FromEnv(*verbose)
	order := cfg.ByteOrder()

	names, err := motdb.Load(cfg.MotDB, order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mot_db: %v\n", err)
		os.Exit(1)
	}
	bones, err := bonedb.Load(cfg.BoneDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bone_data: %v\n", err)
		os.Exit(1)
	}
	skel, err := bones.Skeleton(cfg.Skeleton)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting skeleton: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.RetargetOptions(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("BVH → mot batch retarget")
	fmt.Printf("Jobs: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Skeleton: %s, Orientation: %s\n", skel.Name, opts.Directive)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	if err := batch.EnsureOutputDir(cfg.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Names:       names,
		Classify:    skel,
		Options:     opts,
		Order:       order,
		Bvh:         bvh.Options{NameEncoding: cfg.BvhNameEncoding},
		Workers:     cfg.Workers,
		Preview:     *preview,
		PreviewSize: cfg.PreviewSize,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, partial := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			errors = append(errors, r)
			continue
		}
		success++
		if len(r.Skipped) > 0 {
			partial++
		}
	}

	fmt.Printf("Retargeted: %d/%d (%d with skipped joints)\n", success, len(jobs), partial)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(errors))
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}
