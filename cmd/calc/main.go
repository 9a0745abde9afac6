// Command calc runs a single valuation from the command line: the method
// name plus a JSON field payload in, the validation outcome and result as
// JSON out. Useful for smoke tests and report tooling without the API.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/validate"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"
)

func main() {
	methodName := flag.String("method", "", "Valuation method (e.g. DCF, Berkus)")
	dataStr := flag.String("data", "", "JSON field payload")
	refPath := flag.String("reference", "", "Optional reference table file (YAML or HJSON)")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	method, ok := valuation.ParseMethod(*methodName)
	if !ok {
		fmt.Printf("Error: Unknown valuation method %q\n", *methodName)
		fmt.Println("Supported methods:")
		for _, m := range valuation.Methods() {
			fmt.Printf("  %s\n", m)
		}
		os.Exit(1)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(*dataStr), &fields); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	tables := refdata.Default()
	if *refPath != "" {
		loaded, err := refdata.Load(*refPath)
		if err != nil {
			fmt.Printf("Error loading reference tables: %v\n", err)
			os.Exit(1)
		}
		tables = loaded
	}

	validator := validate.NewEngine(tables)
	outcome := validator.ValidateMethodInputs(method, fields)

	for _, msg := range outcome.Messages {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s (%s)\n", msg.Severity, msg.Field, msg.Text, msg.Code)
	}
	if !outcome.IsValid {
		fmt.Fprintln(os.Stderr, "Validation failed; no calculation performed.")
		os.Exit(1)
	}

	engine := valuation.NewEngine(tables)
	result := engine.Calculate(method, outcome.Sanitized)

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))

	if !result.Success {
		os.Exit(1)
	}
}
