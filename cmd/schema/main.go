// Command schema writes the JSON schema of the leadfeed configuration, embedded by pkg/config.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/leadfeed/pkg/config"
)

type options struct {
	Args struct {
		Output string `positional-arg-name:"output" description:"schema file to write"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	output := opts.Args.Output
	if output == "" {
		output = "schema.json"
	}
	if err := writeSchema(output); err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
	fmt.Printf("config schema written to %s\n", output)
}

func writeSchema(path string) error {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
