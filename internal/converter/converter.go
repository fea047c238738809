// =============================================================================
// SDE Types Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. Stages run strictly in
// sequence and the first failure aborts the run:
//
// CONVERSION PIPELINE:
//   1. Read fsd/types.yaml from the SDE zip archive
//   2. Parse the YAML catalog into source records
//   3. Keep records with a marketGroupID and project them
//   4. Sort by id (optional, on by default)
//   5. Report duplicate ids (warnings only)
//   6. Write the gzip-compressed JSON output
//   7. Write the XLSX review report (optional)
//
// Nothing is written until every earlier stage has succeeded, so a failed
// run never leaves a partial output file.
//
// =============================================================================

package converter

import (
	"path"
	"strings"
	"time"

	"github.com/ginjaninja78/sde-types-converter/internal/config"
	"github.com/ginjaninja78/sde-types-converter/internal/jsonwriter"
	"github.com/ginjaninja78/sde-types-converter/internal/types"
	"github.com/ginjaninja78/sde-types-converter/internal/validation"
	"github.com/ginjaninja78/sde-types-converter/internal/xlsxreport"
	"github.com/ginjaninja78/sde-types-converter/internal/yamlparser"
	"github.com/ginjaninja78/sde-types-converter/internal/zipreader"
	"github.com/ginjaninja78/sde-types-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a conversion run.
type Result struct {
	// InputFile is the archive that was read.
	InputFile string

	// OutputFile is the gzip JSON file that was written.
	OutputFile string

	// ReportFile is the XLSX report, or empty if none was requested.
	ReportFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RecordsParsed is the number of records in the catalog.
	RecordsParsed int

	// RecordsExported is the number of records written to the output.
	RecordsExported int

	// RecordsSkipped is the number of records without a marketGroupID.
	RecordsSkipped int

	// DuplicateIDs is the number of ids produced by more than one record.
	DuplicateIDs int

	// JSONBytes is the uncompressed size of the JSON output.
	JSONBytes int

	// OutputBytes is the size of the compressed output file.
	OutputBytes int64

	// ProcessingTime is the time taken by the whole run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the conversion pipeline for one configuration.
type Converter struct {
	cfg         *config.Config
	transformer *Transformer
	logger      Logger
}

// New creates a Converter. A nil logger discards all log output.
func New(cfg *config.Config, logger Logger) *Converter {
	if logger == nil {
		logger = discardLogger
	}
	return &Converter{
		cfg:         cfg,
		transformer: NewTransformer(),
		logger:      logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// RETURNS:
//   - The Result of a successful run.
//   - The first stage error, a *types.ConversionError classifying the
//     failure. The partial Result is returned alongside it.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()
	result := Result{InputFile: c.cfg.Input}

	// STEP 1: extract the catalog text.
	c.logger.Debug("reading archive", "input", c.cfg.Input, "entry", c.cfg.Entry)

	text, err := zipreader.ReadEntry(c.cfg.Input, c.cfg.Entry)
	if err != nil {
		if types.KindOf(err) == types.ErrEntryNotFound {
			c.logSimilarEntries()
		}
		return result, err
	}

	c.logger.Debug("extracted entry", "entry", c.cfg.Entry, "bytes", len(text))

	// STEP 2: parse.
	records, err := yamlparser.Parse(text)
	if err != nil {
		return result, err
	}

	result.Stats.RecordsParsed = len(records)
	c.logger.Debug("parsed catalog", "records", len(records))

	// STEP 3: filter and project.
	output, err := c.transformer.Transform(records)
	if err != nil {
		return result, err
	}

	result.Stats.RecordsExported = len(output)
	result.Stats.RecordsSkipped = len(records) - len(output)

	// STEP 4: order.
	if c.cfg.SortByID {
		SortByID(output)
	}

	// STEP 5: duplicate ids are kept but reported.
	dups := validation.FindDuplicateIDs(output)
	result.Stats.DuplicateIDs = len(dups)
	for _, d := range dups {
		c.logger.Warn("duplicate id in output", "id", d.ID, "count", d.Count)
	}

	// STEP 6: write the output.
	if utils.FileExists(c.cfg.Output) {
		c.logger.Debug("replacing existing output", "output", c.cfg.Output)
	}

	n, err := jsonwriter.WriteFile(c.cfg.Output, output)
	if err != nil {
		return result, err
	}

	result.OutputFile = c.cfg.Output
	result.Stats.JSONBytes = n

	size, err := utils.GetFileSize(c.cfg.Output)
	if err != nil {
		return result, types.NewError(types.ErrIO, c.cfg.Output, err)
	}
	result.Stats.OutputBytes = size
	c.logger.Debug("wrote output", "output", c.cfg.Output, "json_bytes", n, "gzip_bytes", size)

	// STEP 7: optional report.
	if c.cfg.Report != "" {
		if err := xlsxreport.Write(c.cfg.Report, output); err != nil {
			return result, err
		}
		result.ReportFile = c.cfg.Report
		c.logger.Debug("wrote report", "report", c.cfg.Report)
	}

	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("conversion complete",
		"exported", result.Stats.RecordsExported,
		"skipped", result.Stats.RecordsSkipped,
		"output", result.OutputFile,
		"elapsed", result.Stats.ProcessingTime,
	)

	return result, nil
}

// logSimilarEntries lists archive entries sharing the base name of the
// configured entry, to help spot a moved or renamed catalog.
func (c *Converter) logSimilarEntries() {
	archive, err := zipreader.Open(c.cfg.Input)
	if err != nil {
		return
	}
	defer archive.Close()

	names := archive.Names()
	want := path.Base(c.cfg.Entry)

	var similar []string
	for _, name := range names {
		if strings.EqualFold(path.Base(strings.TrimSuffix(name, "/")), want) {
			similar = append(similar, name)
		}
	}

	c.logger.Debug("entry not found in archive",
		"entry", c.cfg.Entry,
		"entries", len(names),
		"similar", similar,
	)
}
