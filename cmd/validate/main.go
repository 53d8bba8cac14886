// Command validate checks strategy sample files against the rule schema and
// prints a JSON report.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"StratLab/internal/strategy"
)

var sampleKinds = []string{"success_samples", "failure_samples"}

type sampleResult struct {
	Idx    int    `json:"idx"`
	Kind   string `json:"kind"`
	Name   any    `json:"name"`
	Result any    `json:"result"`
}

type okResult struct {
	Status int  `json:"status"`
	OK     bool `json:"ok"`
}

type report struct {
	Results []sampleResult `json:"results"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	samples := fs.String("samples", "", "path to a JSON file with success_samples and failure_samples")
	requireKind := fs.Bool("require-kind", false, "reject operands without an explicit kind")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *samples == "" {
		fmt.Fprintln(stderr, "usage: validate -samples tests/resources/strategies/test_samples.json")
		return 2
	}

	f, err := os.Open(*samples)
	if err != nil {
		fmt.Fprintf(stderr, "open samples: %v\n", err)
		return 1
	}
	defer f.Close()

	specs := strategy.NewSpecRegistry()
	strategy.RegisterBuiltinSpecs(specs)
	schema := strategy.NewSchema(specs, strategy.WithRequireKind(*requireKind))

	rep, err := validateSamples(schema, f)
	if err != nil {
		fmt.Fprintf(stderr, "read samples: %v\n", err)
		return 1
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return 1
	}
	return 0
}

func validateSamples(schema *strategy.Schema, r io.Reader) (*report, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc map[string][]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	rep := &report{Results: []sampleResult{}}
	for _, kind := range sampleKinds {
		for i, sample := range doc[kind] {
			var name any
			if m, ok := sample.(map[string]any); ok {
				name = m["name"]
			}
			rep.Results = append(rep.Results, sampleResult{
				Idx:    i,
				Kind:   kind,
				Name:   name,
				Result: validateOne(schema, sample),
			})
		}
	}
	return rep, nil
}

func validateOne(schema *strategy.Schema, sample any) any {
	_, err := schema.ParseStrategy(sample)
	if err == nil {
		return okResult{Status: http.StatusOK, OK: true}
	}
	var ve *strategy.ValidationError
	if !errors.As(err, &ve) {
		ve = &strategy.ValidationError{Violations: []strategy.Violation{{Type: strategy.TypeValueError, Msg: err.Error()}}}
	}
	return strategy.FormatValidationError(ve)
}
