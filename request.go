package variantreport

import "time"

// Panel selects the gene set for a report.
type Panel string

const (
	PanelALS    Panel = "als"
	PanelFTD    Panel = "ftd"
	PanelCustom Panel = "custom"
)

// Population selects which cohort's view provides the headline
// statistics in the returned Summary.
type Population string

const (
	PopulationAll      Population = "all"
	PopulationCases    Population = "cases"
	PopulationControls Population = "controls"
)

// Request is the caller's contract with the pipeline: one validated
// request in, one Result (or one error) out.
type Request struct {
	// Title is echoed on the workbook's summary sheet.
	Title string
	Panel Panel
	// CustomGenes is consulted only when Panel is PanelCustom: a
	// free-text gene list split on commas and newlines.
	CustomGenes string
	Population  Population
	// IncludeSynonymous keeps synonymous variants in the base
	// filtered table; when false they are removed.
	IncludeSynonymous bool
	// EuropeanOnly restricts the sample universe to subjects whose
	// European ancestry fraction is at least 0.85.
	EuropeanOnly bool
	// Timestamp correlates the run with the caller's log entries and
	// disambiguates the output filename.
	Timestamp time.Time
}

// Summary is returned to the caller alongside the output path. Its
// numbers are computed from the same views written to the workbook.
type Summary struct {
	// Variants is the row count of the base filtered table.
	Variants int
	// Samples is the number of sample columns participating in the
	// requested population's view.
	Samples int
	// Genes is the number of distinct gene symbols observed in the
	// base filtered table.
	Genes int
	// ClassCounts is the functional-class distribution of the base
	// filtered table.
	ClassCounts map[string]int
	// Filters echoes the applied-filter description shown on the
	// summary sheet.
	Filters string
}

// Result is the successful outcome of one pipeline run.
type Result struct {
	Path    string
	Summary Summary
}

// Outcome is delivered exactly once on the channel returned by Start.
type Outcome struct {
	Result *Result
	Err    error
}
