package variantreport

import (
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

const categoryColumn = "Gene_Category"

type geneCategoryRecord struct {
	Gene     string `csv:"Gene"`
	Name     string `csv:"Name"`
	Category string `csv:"Category"`
}

// loadGeneCategories reads the gene-category reference table and
// returns a symbol -> category map. Only the category column is ever
// merged; the display name is reference-file documentation.
func loadGeneCategories(fnm string) (map[string]string, error) {
	buf, err := os.ReadFile(fnm)
	if err != nil {
		return nil, fileAccessErr(fnm, err)
	}
	var records []*geneCategoryRecord
	err = gocsv.UnmarshalBytes(buf, &records)
	if err != nil {
		return nil, parseErr(fnm, err)
	}
	categories := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Gene != "" {
			categories[rec.Gene] = rec.Category
		}
	}
	log.Infof("loaded categories for %d genes from %s", len(categories), fnm)
	return categories, nil
}

// mergeGeneCategories left-joins the category map onto tbl as a new
// annotation column placed right after the source annotation prefix.
// Genes without a category entry keep an empty cell; a join miss is
// expected, never an error.
func mergeGeneCategories(tbl *variantTable, categories map[string]string) *variantTable {
	annoWidth := len(tbl.schema.annotation)
	geneCol := tbl.schema.annoCol[geneColumn]

	header := make([]string, 0, len(tbl.header)+1)
	header = append(header, tbl.header[:annoWidth]...)
	header = append(header, categoryColumn)
	header = append(header, tbl.header[annoWidth:]...)

	schema := tableSchema{
		annotation: header[:annoWidth+1],
		samples:    tbl.schema.samples,
		sampleCol:  make(map[string]int, len(tbl.schema.sampleCol)),
		annoCol:    make(map[string]int, len(tbl.schema.annoCol)+1),
	}
	for col, i := range tbl.schema.annoCol {
		schema.annoCol[col] = i
	}
	schema.annoCol[categoryColumn] = annoWidth
	for id, i := range tbl.schema.sampleCol {
		schema.sampleCol[id] = i + 1
	}

	rows := make([][]string, len(tbl.rows))
	matched := 0
	for i, row := range tbl.rows {
		out := make([]string, 0, len(header))
		out = append(out, row[:annoWidth]...)
		cat, ok := categories[row[geneCol]]
		if ok {
			matched++
		}
		out = append(out, cat)
		out = append(out, row[annoWidth:]...)
		rows[i] = out
	}
	log.Infof("gene-category merge: %d of %d rows matched a category", matched, len(rows))
	return &variantTable{header: header, rows: rows, schema: schema}
}
