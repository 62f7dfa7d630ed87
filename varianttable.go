package variantreport

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

const (
	// annotationColumnCount is the fixed width of the variant table's
	// annotation prefix; every later column is a per-sample genotype.
	annotationColumnCount = 35

	// buildSuffix may trail a sample column name. The suffix-stripped
	// name is the subject identifier used for cohort matching; the
	// column keeps its original name everywhere else.
	buildSuffix = "_GRCh38"

	// Sentinel genotype values meaning "no variant call". The leading
	// quote comes from the source export and is preserved exactly.
	genotypeHomRef  = "'0/0"
	genotypeMissing = "'./."

	synonymousClass = "synonymous SNV"

	geneColumn     = "Gene.refGene"
	funcColumn     = "ExonicFunc.refGene"
	clnsigColumn   = "CLNSIG"
	intervarColumn = "InterVar_automated"
	damagingColumn = "Damaging_predictions"
)

var requiredAnnotationColumns = []string{
	geneColumn,
	funcColumn,
	clnsigColumn,
	intervarColumn,
	damagingColumn,
}

// isCall reports whether a genotype cell denotes an observed variant.
// Blank cells count as missing.
func isCall(gt string) bool {
	return gt != "" && gt != genotypeHomRef && gt != genotypeMissing
}

// tableSchema is the validated annotation/sample column split of one
// variant table, resolved once at load time.
type tableSchema struct {
	annotation []string
	samples    []string
	// sampleCol maps the suffix-stripped subject identifier to the
	// column index in the full header.
	sampleCol map[string]int
	// annoCol maps the named annotation fields to column indexes.
	annoCol map[string]int
}

// sampleUniverse is the set of suffix-stripped subject identifiers
// that actually have a genotype column in the table.
func (s tableSchema) sampleUniverse() sampleSet {
	out := sampleSet{}
	for id := range s.sampleCol {
		out[id] = true
	}
	return out
}

type variantTable struct {
	header []string
	rows   [][]string
	schema tableSchema
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// zopen opens fnm, transparently decompressing if it ends with ".gz".
func zopen(fnm string) (io.ReadCloser, error) {
	f, err := os.Open(fnm)
	if err != nil || !strings.HasSuffix(fnm, ".gz") {
		return f, err
	}
	rdr, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipr{rdr, f}, nil
}

func newTableSchema(fnm string, header []string) (tableSchema, error) {
	if len(header) <= annotationColumnCount {
		return tableSchema{}, parseErrf("%s: header has %d columns, need more than %d (annotation columns plus at least one sample)", fnm, len(header), annotationColumnCount)
	}
	schema := tableSchema{
		annotation: header[:annotationColumnCount],
		samples:    header[annotationColumnCount:],
		sampleCol:  map[string]int{},
		annoCol:    map[string]int{},
	}
	for i, col := range schema.annotation {
		schema.annoCol[col] = i
	}
	for _, col := range requiredAnnotationColumns {
		if _, ok := schema.annoCol[col]; !ok {
			return tableSchema{}, parseErrf("%s: annotation column %q not found in first %d columns", fnm, col, annotationColumnCount)
		}
	}
	for i, col := range schema.samples {
		id := strings.TrimSuffix(col, buildSuffix)
		if prev, dup := schema.sampleCol[id]; dup {
			return tableSchema{}, parseErrf("%s: sample columns %q and %q both resolve to subject %q", fnm, header[prev], col, id)
		}
		schema.sampleCol[id] = annotationColumnCount + i
	}
	return schema, nil
}

// readVariantTable streams the compressed variant table in chunks of
// chunkRows rows and returns the fully concatenated working table.
// Chunking bounds peak memory during the transfer only; downstream
// joins need the whole table in memory. Tables larger than memory are
// a documented scaling limit, not handled here.
func readVariantTable(fnm string, chunkRows int) (*variantTable, error) {
	f, err := zopen(fnm)
	if err != nil {
		return nil, fileAccessErr(fnm, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 1<<20))
	r.Comma = '\t'
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		return nil, parseErr(fnm+": reading header", err)
	}
	schema, err := newTableSchema(fnm, header)
	if err != nil {
		return nil, err
	}
	log.Infof("%s: %d annotation columns, %d sample columns", fnm, len(schema.annotation), len(schema.samples))

	// csv.Reader enforces the column count against the header from
	// here on; a short or long row surfaces as csv.ErrFieldCount.
	var rows [][]string
	chunk := make([][]string, 0, chunkRows)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, parseErr(fnm, err)
		}
		chunk = append(chunk, rec)
		if len(chunk) == chunkRows {
			rows = append(rows, chunk...)
			log.Debugf("%s: ingested %d rows", fnm, len(rows))
			chunk = make([][]string, 0, chunkRows)
		}
	}
	rows = append(rows, chunk...)
	log.Infof("%s: ingested %d rows total", fnm, len(rows))
	return &variantTable{header: header, rows: rows, schema: schema}, nil
}
