package variantreport

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Run executes one whole report pipeline synchronously: resolve the
// gene set, build cohorts from metadata, ingest the variant table,
// filter, merge gene categories, materialize the per-cohort and
// pathogenicity views, and write the workbook. The stages run strictly
// in order; there are no suspension points and no cancellation. Either
// a Result comes back, or an error after which no output file should
// be trusted.
func Run(cfg Config, req Request) (*Result, error) {
	started := time.Now()
	if req.Timestamp.IsZero() {
		req.Timestamp = started
	}
	if req.Title == "" {
		req.Title = "Variant Report"
	}
	switch req.Population {
	case PopulationAll, PopulationCases, PopulationControls:
	default:
		return nil, validationErrf("unknown population %q", req.Population)
	}

	gs, err := resolveGeneSet(cfg, req)
	if err != nil {
		return nil, err
	}
	records, err := loadMetadata(cfg.MetadataFile)
	if err != nil {
		return nil, err
	}
	ch := buildCohorts(records, req.EuropeanOnly)

	tbl, err := readVariantTable(cfg.VariantTable, cfg.ChunkRows)
	if err != nil {
		return nil, err
	}
	base := filterBase(tbl, gs, req.IncludeSynonymous)

	categories, err := loadGeneCategories(cfg.GeneCategory)
	if err != nil {
		return nil, err
	}
	merged := mergeGeneCategories(base, categories)

	// Sheet order is fixed here: cohort views in declaration order,
	// then the pathogenicity views. Nothing downstream reorders.
	universe := merged.schema.sampleUniverse()
	defs := []struct {
		name    string
		members sampleSet
		split   bool
	}{
		{"All Samples", ch.universe, true},
		{"ALS Cases", ch.cases, false},
		{"Controls", ch.controls, false},
		{"C9orf72 Carriers", ch.c9, true},
		{"ATXN2 Carriers", ch.atxn2, true},
	}
	var views []reportView
	for _, def := range defs {
		v := materializeView(merged, def.name, def.members)
		if def.split {
			present := def.members.intersect(universe)
			v.hasSplit = true
			v.caseN = len(present.intersect(ch.cases))
			v.controlN = len(present.intersect(ch.controls))
		}
		views = append(views, v)
	}
	views = append(views, pathogenicViews(merged)...)

	baseIdx := 0
	switch req.Population {
	case PopulationCases:
		baseIdx = 1
	case PopulationControls:
		baseIdx = 2
	}

	result, err := assembleReport(cfg, req, merged, views, &views[baseIdx], records)
	if err != nil {
		return nil, err
	}
	log.Infof("report pipeline finished in %v", time.Since(started))
	return result, nil
}

// Start runs the pipeline on its own goroutine and returns a channel
// delivering exactly one Outcome. The pipeline itself stays
// synchronous and callback-free; this is the only concurrency boundary
// offered to interactive callers. Callers must serialize invocations
// that would share an output path.
func Start(cfg Config, req Request) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := Run(cfg, req)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}
