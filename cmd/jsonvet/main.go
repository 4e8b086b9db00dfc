// Command jsonvet validates JSON and YAML documents against declarative
// structural schemas.
package main

import (
	"os"

	"github.com/fieldstack-labs/jsonvet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
