package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apivaluation "github.com/Brainfkt/Startup-Valuation-Calculator/pkg/api/valuation"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Reference tables: file override first, compiled-in defaults otherwise.
	refPath := os.Getenv("REFDATA_FILE")
	if refPath == "" {
		refPath = "config/reference.yaml"
	}

	var tables *refdata.Tables
	if _, err := os.Stat(refPath); err == nil {
		loaded, err := refdata.Load(refPath)
		if err != nil {
			fmt.Printf("[ERROR] Failed to load reference tables: %v\n", err)
			os.Exit(1)
		}
		tables = loaded
		fmt.Printf("[REFDATA] Loaded reference tables from %s\n", refPath)
	} else {
		tables = refdata.Default()
		fmt.Printf("[WARNING] No reference file at %s\n", refPath)
		fmt.Println("  Falling back to compiled-in defaults")
	}

	handler := apivaluation.NewHandler(tables, store.NewHistory(0))

	mux := http.NewServeMux()
	handler.Register(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	fmt.Printf("[SERVER] Valuation API listening on :%s\n", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		fmt.Printf("[ERROR] Server stopped: %v\n", err)
		os.Exit(1)
	}
}
