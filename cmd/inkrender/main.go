// Command inkrender rasterizes a page of a serialized Zen-Note
// document to a PNG file.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	ink "github.com/IMAM-BASHA/Zen-Note--sub001"
)

func newStderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	var (
		input   = flag.String("input", "", "document JSON file")
		output  = flag.String("output", "page.png", "output PNG file")
		page    = flag.Int("page", -1, "page index (-1 = document's current page)")
		width   = flag.Int("width", 1200, "image width")
		height  = flag.Int("height", 900, "image height")
		export  = flag.Bool("export", false, "high-resolution export mode (fit content)")
		maxDim  = flag.Int("maxdim", 4096, "maximum output dimension in export mode")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}
	if *verbose {
		ink.SetLogger(newStderrLogger())
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read document: %v", err)
	}
	doc, err := ink.DecodeDocument(data)
	if err != nil {
		log.Fatalf("decode document: %v", err)
	}
	if *page >= 0 {
		doc.SetCurrentPage(*page)
	}

	renderer := ink.NewRenderer()
	var img *image.RGBA
	if *export {
		img = renderer.RenderHighRes(doc.Page(), *width, *maxDim)
	} else {
		img = renderer.Render(doc.Page(), *width, *height, nil)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	b := img.Bounds()
	log.Printf("Rendered %q page %d to %s (%dx%d)\n",
		*input, doc.CurrentPage, *output, b.Dx(), b.Dy())
}
