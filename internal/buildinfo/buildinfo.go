// Package buildinfo exposes build metadata injected at link time via
// -ldflags "-X github.com/dmitrijs2005/witter/internal/buildinfo.BuildVersion=...".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	BuildVersion = "N/A"
	BuildDate    = "N/A"
	BuildCommit  = "N/A"
)

// PrintBuildData writes the build stamp to w, one line per field.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", BuildVersion)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", BuildCommit)
}
