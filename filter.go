package variantreport

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// filterBase applies the gene-membership filter (and, unless
// includeSynonymous, the synonymous-class filter) and returns a new
// table sharing the input's header and schema.
func filterBase(tbl *variantTable, gs geneSet, includeSynonymous bool) *variantTable {
	geneCol := tbl.schema.annoCol[geneColumn]
	funcCol := tbl.schema.annoCol[funcColumn]
	var rows [][]string
	for _, row := range tbl.rows {
		if !gs[row[geneCol]] {
			continue
		}
		if !includeSynonymous && row[funcCol] == synonymousClass {
			continue
		}
		rows = append(rows, row)
	}
	log.Infof("gene/class filter kept %d of %d rows (%d genes requested, includeSynonymous=%v)",
		len(rows), len(tbl.rows), len(gs), includeSynonymous)
	return &variantTable{header: tbl.header, rows: rows, schema: tbl.schema}
}

// rowHasCall reports whether at least one of the given genotype
// columns holds a non-sentinel call in row.
func rowHasCall(row []string, cols []int) bool {
	for _, c := range cols {
		if isCall(row[c]) {
			return true
		}
	}
	return false
}

// reportView is one named, column-restricted, row-filtered snapshot of
// the working table, destined for one workbook sheet.
type reportView struct {
	name      string
	header    []string
	rows      [][]string
	annoWidth int
	// caseN/controlN are filled for views defined over a case/control
	// split; hasSplit gates their display.
	hasSplit bool
	caseN    int
	controlN int
}

// sampleCount is the number of genotype columns participating in the
// view.
func (v *reportView) sampleCount() int {
	return len(v.header) - v.annoWidth
}

// materializeView restricts tbl to its annotation columns plus the
// genotype columns of the given cohort members, keeping only rows
// where at least one member carries a call. Cohort members without a
// column in the table are silently dropped first: metadata and variant
// table are independent sources and are not guaranteed to agree.
func materializeView(tbl *variantTable, name string, members sampleSet) reportView {
	var cols []int
	for id := range members {
		if c, ok := tbl.schema.sampleCol[id]; ok {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)

	annoWidth := len(tbl.schema.annotation)
	header := make([]string, 0, annoWidth+len(cols))
	header = append(header, tbl.header[:annoWidth]...)
	for _, c := range cols {
		header = append(header, tbl.header[c])
	}

	var rows [][]string
	for _, row := range tbl.rows {
		if !rowHasCall(row, cols) {
			continue
		}
		out := make([]string, 0, len(header))
		out = append(out, row[:annoWidth]...)
		for _, c := range cols {
			out = append(out, row[c])
		}
		rows = append(rows, out)
	}
	log.Infof("view %q: %d samples, %d rows", name, len(cols), len(rows))
	return reportView{name: name, header: header, rows: rows, annoWidth: annoWidth}
}
