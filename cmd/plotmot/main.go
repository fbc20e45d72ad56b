package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"mot-retarget/internal/motion"
	"mot-retarget/internal/plot"
)

func main() {
	size := flag.Int("size", 1024, "Output width in pixels")
	cols := flag.Int("cols", 4, "Slots per row")
	supersample := flag.Int("ss", 2, "Supersample factor")
	animated := flag.Bool("animated", false, "Only draw slots with animated curves")
	bigEndian := flag.Bool("be", false, "Input is big-endian")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <in.mot> <out.webp|out.tga>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var order binary.ByteOrder = binary.LittleEndian
	if *bigEndian {
		order = binary.BigEndian
	}

	m, err := motion.Load(in, order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img, err := plot.Render(m, plot.Options{
		Size:         *size,
		Columns:      *cols,
		Supersample:  *supersample,
		AnimatedOnly: *animated,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := plot.Save(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("%s: %d slots, %d frames -> %s (%dx%d)\n", in, m.SlotCount(), m.FrameCount, out, b.Dx(), b.Dy())
}
