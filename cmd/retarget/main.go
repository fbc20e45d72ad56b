package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mot-retarget/internal/bonedb"
	"mot-retarget/internal/bvh"
	"mot-retarget/internal/config"
	"mot-retarget/internal/logging"
	"mot-retarget/internal/motdb"
	"mot-retarget/internal/motion"
	"mot-retarget/internal/plot"
	"mot-retarget/internal/retarget"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mot_db> <bone_db> <input.mot> <input.bvh> <output.mot> [orientation]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	bigEndian := flag.Bool("be", false, "mot and mot_db files are big-endian")
	workers := flag.Int("workers", 0, "Goroutines computing joint curves (default: 1)")
	preview := flag.String("preview", "", "Write a curve preview (.webp or .tga)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 5 || len(args) > 6 {
		usage()
		os.Exit(1)
	}
	motDB, boneDB, inMot, inBvh, outMot := args[0], args[1], args[2], args[3], args[4]
	orientation := ""
	if len(args) == 6 {
		orientation = args[5]
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		MotDB:        absPath(motDB),
		BoneDB:       absPath(boneDB),
		Directive:    orientation,
		BigEndian:    *bigEndian,
		JointWorkers: *workers,
	})

	log := logging.FromEnv(*verbose)
	order := cfg.ByteOrder()

	names, err := motdb.Load(cfg.MotDB, order)
	if err != nil {
		fatal("loading mot_db", err)
	}
	bones, err := bonedb.Load(cfg.BoneDB)
	if err != nil {
		fatal("loading bone_data", err)
	}
	skel, err := bones.Skeleton(cfg.Skeleton)
	if err != nil {
		fatal("selecting skeleton", err)
	}

	m, err := motion.Load(inMot, order)
	if err != nil {
		fatal("loading mot", err)
	}
	src, err := bvh.ParseFile(inBvh, bvh.Options{NameEncoding: cfg.BvhNameEncoding})
	if err != nil {
		fatal("loading bvh", err)
	}

	opts, err := cfg.RetargetOptions(log)
	if err != nil {
		fatal("reading config", err)
	}

	fmt.Printf("Skeleton: %s (%d bones), mot_db bones: %d\n", skel.Name, len(skel.Bones), len(names.Bones))
	fmt.Printf("Motion: %d slots, %d frames; BVH: %d joints, %d frames\n",
		m.SlotCount(), m.FrameCount, len(src.Joints), src.FrameCount())
	fmt.Printf("Orientation: %s\n", opts.Directive)

	start := time.Now()
	rep, err := retarget.New(names, skel, opts).Run(src, m)
	if err != nil {
		fatal("retargeting", err)
	}

	if err := motion.Save(outMot, m, order); err != nil {
		fatal("writing output", err)
	}
	fmt.Printf("Wrote %s in %.2fs: %s\n", outMot, time.Since(start).Seconds(), rep.Summary())

	if len(rep.Skipped) > 0 {
		fmt.Printf("\nSkipped (%d):\n", len(rep.Skipped))
		for _, s := range rep.Skipped {
			fmt.Printf("  %s [%s]\n", s.Joint, s.Stage)
		}
	}

	if *preview != "" {
		po := plot.DefaultOptions()
		po.Size = cfg.PreviewSize
		po.AnimatedOnly = true
		img, err := plot.Render(m, po)
		if err != nil {
			fatal("rendering preview", err)
		}
		if err := plot.Save(*preview, img); err != nil {
			fatal("writing preview", err)
		}
		fmt.Printf("Preview: %s\n", *preview)
	}
}

// absPath pins positional paths to the working directory so Resolve does
// not rebase them onto the detected data directory.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
