// Command o2insight2medview converts an O2 Insight Pro CSV export into
// MedView DAT files that OSCAR imports as a ChoiceMMed MD300W1 recording.
package main

import (
	"os"

	"github.com/tartampluch/go-medview/internal/cli"
)

func main() {
	os.Exit(cli.Main(cli.NewO2InsightCommand, os.Args[1:]))
}
