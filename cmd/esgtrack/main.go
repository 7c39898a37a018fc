// Command esgtrack scores construction projects on ESG metrics and values
// the financial incentives they qualify for.
package main

import (
	"errors"
	"os"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/cli"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
	"github.com/kevanbtc/donkey-financial-ecosystem/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to exit codes: validation
// errors exit 2, everything else exits 1. Cobra prints the error itself.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		var vErr *engine.ValidationError
		if errors.As(err, &vErr) {
			return 2
		}
		return 1
	}
	return 0
}
