// Command gendata writes a synthetic ranking request to a JSON file, ready
// to feed rankfile or rankbench.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/microlearn/sessionrank/internal/reqgen"
)

func main() {
	var (
		outPath    = flag.String("out", "input.json", "path for the generated request JSON")
		sessions   = flag.Int("sessions", 8, "number of candidate sessions")
		dim        = flag.Int("dim", 0, "embedding dimension; 0 generates no embeddings")
		structured = flag.Float64("structured", 0.5, "fraction of sessions with a tabular feature block")
	)
	flag.Parse()

	req, err := reqgen.Generate(context.Background(),
		reqgen.WithSessions(*sessions),
		reqgen.WithEmbeddingDim(*dim),
		reqgen.WithStructuredShare(*structured),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate request:", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode request:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "write request:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d sessions to %s\n", len(req.Sessions), *outPath)
}
