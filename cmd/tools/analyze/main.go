// analyze runs the projection calculator on an extraction JSON file and
// prints the resulting analysis. Useful for inspecting calculator behavior
// without the server or an LLM key.
//
// Usage: analyze <extraction.json> [output.json]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"bizcase_analyzer/pkg/core/calc"
	"bizcase_analyzer/pkg/core/extraction"
	"bizcase_analyzer/pkg/core/report"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze <extraction.json> [output.json]")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Error reading input: %v", err)
	}

	var rec extraction.Result
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Fatalf("Error parsing extraction JSON: %v", err)
	}

	ca, err := calc.Calculate(&rec)
	if err != nil {
		log.Fatalf("Calculation failed: %v", err)
	}

	out, err := json.MarshalIndent(ca, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling analysis: %v", err)
	}

	if len(os.Args) > 2 {
		if err := os.WriteFile(os.Args[2], out, 0o644); err != nil {
			log.Fatalf("Error writing output: %v", err)
		}
		fmt.Printf("Analysis written to %s\n", os.Args[2])
	} else {
		fmt.Println(string(out))
	}

	fmt.Println()
	fmt.Println(report.Markdown(ca))
}
