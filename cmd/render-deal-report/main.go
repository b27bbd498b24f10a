package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joelkehle/dealintel/internal/render"
)

func main() {
	inputPath := flag.String("input", "", "Path to deal result JSON or markdown report")
	outputPath := flag.String("output", "report.pdf", "Path to write the PDF")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	renderer := render.NewPDFRenderer()
	pdf, err := renderer.Render(context.Background(), in)
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}

	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *outputPath, len(pdf))
}
