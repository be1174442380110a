// FILE: cmd/inspect/main.go
// PURPOSE: Run a saved tool result through the interpretation pipeline from the shell
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"ai-shopping-be/internal/pkg/logger"
	"ai-shopping-be/pkg/model"
	"ai-shopping-be/pkg/relevance"
	"ai-shopping-be/pkg/router"
	"ai-shopping-be/pkg/truncate"

	"github.com/fatih/color"
)

func main() {
	toolName := flag.String("tool", "", "tool name the result came from (required)")
	vertical := flag.String("vertical", model.VerticalFood, "vertical id: food, dining, grocery, ...")
	query := flag.String("query", "", "latest user message; enables reranking when set")
	locked := flag.String("restaurant", "", "locked restaurant for menu mode")
	mode := flag.String("mode", model.ModeDiscover, "render mode")
	maxChars := flag.Int("truncate", 0, "also print the smart-truncated content at this budget")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *toolName == "" {
		color.Red("missing -tool")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := readInput(flag.Arg(0))
	if err != nil {
		color.Red("Failed to read input: %v", err)
		os.Exit(1)
	}

	log := logger.NewConsoleLogger(*verbose)
	defer log.Sync()

	var rc *model.ToolRenderContext
	if *query != "" {
		rc = relevance.BuildRenderContext(*vertical, *query, *locked, *mode)
		color.Cyan("Constraints")
		prettyPrint(rc.StrictConstraints)
	}

	r := router.New(router.WithRelevance(rc != nil), router.WithLogger(log))
	result := r.Parse(router.Request{
		ToolName:   *toolName,
		Content:    string(raw),
		VerticalID: *vertical,
		Context:    rc,
	})

	color.Green("\nType: %s (%d entries)", result.Type, result.Len())
	if result.RequireBroadenPrompt {
		color.Yellow("No exact match. Active filters: %v", result.ActiveFilters)
	}
	if result.Debug != nil {
		color.Yellow("Relevance: %s, %d -> %d", result.Debug.Strategy, result.Debug.CandidateCount, result.Debug.ReturnedCount)
	}
	prettyPrint(result)

	if *maxChars > 0 {
		terms := relevance.Tokenize(*query)
		out := truncate.SmartTruncateJSONContent(string(raw), terms, *maxChars)
		color.Cyan("\nTruncated %d -> %d bytes (terms %v)", len(raw), len(out), terms)
		fmt.Println(out)
	}
}

// readInput reads the file at path, or stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
