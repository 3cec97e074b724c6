// Command emay2medview converts an EMAY pulse oximeter CSV export into
// MedView DAT files that OSCAR imports as a ChoiceMMed MD300W1 recording.
package main

import (
	"os"

	"github.com/tartampluch/go-medview/internal/cli"
)

func main() {
	os.Exit(cli.Main(cli.NewEmayCommand, os.Args[1:]))
}
