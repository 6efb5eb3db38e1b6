// Package main provides the Weft CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/weft-ml/weft/backend/cpu"
	"github.com/weft-ml/weft/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Weft %s\n", version)
			return
		case "bench":
			n := 1 << 20
			if len(os.Args) > 2 {
				v, err := strconv.Atoi(os.Args[2])
				if err != nil || v <= 0 {
					fmt.Fprintf(os.Stderr, "bench: invalid element count %q\n", os.Args[2])
					os.Exit(1)
				}
				n = v
			}
			bench(n)
			return
		}
	}

	fmt.Println("Weft - Elementwise Kernel Launch Engine for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version       Show version")
	fmt.Println("  bench [n]     Time an elementwise add over n elements")
}

// bench times a float32 elementwise add through the launch engine.
func bench(n int) {
	av := make([]float32, n)
	bv := make([]float32, n)
	for i := range av {
		av[i] = float32(i)
		bv[i] = float32(n - i)
	}
	a, err := tensor.FromSlice(av, tensor.Shape{n})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(1)
	}
	b, err := tensor.FromSlice(bv, tensor.Shape{n})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(1)
	}

	backend := cpu.New()
	backend.Add(a, b) // warm up

	const rounds = 10
	start := time.Now()
	for i := 0; i < rounds; i++ {
		backend.Add(a, b)
	}
	elapsed := time.Since(start) / rounds

	perElem := float64(elapsed.Nanoseconds()) / float64(n)
	fmt.Printf("add %d elements: %v per launch (%.2f ns/element)\n", n, elapsed, perElem)
}
