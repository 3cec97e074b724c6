// Command medviewdump prints the header and records of MedView DAT files.
package main

import (
	"os"

	"github.com/tartampluch/go-medview/internal/cli"
)

func main() {
	os.Exit(cli.Main(cli.NewDumpCommand, os.Args[1:]))
}
