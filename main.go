// =============================================================================
// SDE Types Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the sdeconv CLI. It converts the type
// catalog of the EVE Online static data export into a compact, gzip-
// compressed JSON list of market types.
//
// USAGE:
//   sdeconv            - Convert ./sde.zip into ./types.json.gz
//   sdeconv version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : Cobra command definitions
//   - internal/  : Pipeline stages (zipreader, yamlparser, converter,
//                  jsonwriter, xlsxreport) and configuration
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sde-types-converter/cmd"
)

func main() {
	cmd.Execute()
}
