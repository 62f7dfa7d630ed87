package variantreport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"
)

const (
	summarySheet    = "Summary"
	dictionarySheet = "Data Dictionary"
)

// filterDescription is echoed on the summary sheet and in the returned
// Summary so the caller can display exactly what was applied.
func filterDescription(req Request) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("gene panel: %s", req.Panel))
	parts = append(parts, fmt.Sprintf("population: %s", populationLabel(req.Population)))
	if req.IncludeSynonymous {
		parts = append(parts, "synonymous variants included")
	} else {
		parts = append(parts, "synonymous variants excluded")
	}
	if req.EuropeanOnly {
		parts = append(parts, fmt.Sprintf("European ancestry >= %.2f", europeanAncestryMin))
	} else {
		parts = append(parts, "all ancestries")
	}
	return strings.Join(parts, "; ")
}

func populationLabel(p Population) string {
	switch p {
	case PopulationCases:
		return "ALS Cases"
	case PopulationControls:
		return "Controls"
	default:
		return "All Samples"
	}
}

// summarize computes the Summary record from the base filtered table
// and the population's own view, so the returned numbers always match
// the workbook.
func summarize(req Request, base *variantTable, baseView *reportView) Summary {
	geneCol := base.schema.annoCol[geneColumn]
	funcCol := base.schema.annoCol[funcColumn]
	genes := map[string]bool{}
	classes := map[string]int{}
	for _, row := range base.rows {
		genes[row[geneCol]] = true
		classes[row[funcCol]]++
	}
	return Summary{
		Variants:    len(base.rows),
		Samples:     baseView.sampleCount(),
		Genes:       len(genes),
		ClassCounts: classes,
		Filters:     filterDescription(req),
	}
}

// viewAncestry returns the European-ancestry fractions of the view's
// participating samples, looked up by suffix-stripped column name.
func viewAncestry(v *reportView, records []*metadataRecord) []float64 {
	byID := make(map[string]*metadataRecord, len(records))
	for _, rec := range records {
		byID[rec.ParticipantID] = rec
	}
	var xs []float64
	for _, col := range v.header[v.annoWidth:] {
		if rec, ok := byID[strings.TrimSuffix(col, buildSuffix)]; ok {
			xs = append(xs, ancestryFraction(rec))
		}
	}
	return xs
}

func writeViewSheet(f *excelize.File, v *reportView, headerStyle int) error {
	_, err := f.NewSheet(v.name)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(v.header))
	for i, col := range v.header {
		row[i] = col
	}
	err = f.SetSheetRow(v.name, "A1", &row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(v.header), 1)
	if err != nil {
		return err
	}
	err = f.SetCellStyle(v.name, "A1", last, headerStyle)
	if err != nil {
		return err
	}
	for i, cells := range v.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		err = f.SetSheetRow(v.name, cell, &row)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, req Request, views []reportView, summary Summary, ancestry []float64) error {
	rows := [][]interface{}{
		{req.Title},
		{"Generated", req.Timestamp.Format("2006-01-02 15:04:05")},
		{"Filters", summary.Filters},
		{},
		{"Sheet", "Samples", "Variants", "Cases", "Controls"},
	}
	for i := range views {
		v := &views[i]
		row := []interface{}{v.name, v.sampleCount(), len(v.rows)}
		if v.hasSplit {
			row = append(row, v.caseN, v.controlN)
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total filtered variants", summary.Variants},
		[]interface{}{fmt.Sprintf("Participating samples (%s)", populationLabel(req.Population)), summary.Samples},
		[]interface{}{"Distinct genes", summary.Genes},
	)
	if len(ancestry) > 0 {
		mean := stat.Mean(ancestry, nil)
		sd := stat.StdDev(ancestry, nil)
		rows = append(rows, []interface{}{"Mean European ancestry", fmt.Sprintf("%.3f (SD %.3f)", mean, sd)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Functional class", "Variants"})
	classes := make([]string, 0, len(summary.ClassCounts))
	for class := range summary.ClassCounts {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		rows = append(rows, []interface{}{class, summary.ClassCounts[class]})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(summarySheet, cell, &rows[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// assembleReport writes the workbook and returns the Result. Sheet
// order is fixed: Summary, then each view in the order given, then the
// data dictionary. The workbook is written to a temporary name and
// renamed into place, so a failed run never leaves a plausible-looking
// report behind.
func assembleReport(cfg Config, req Request, base *variantTable, views []reportView, baseView *reportView, records []*metadataRecord) (*Result, error) {
	dict, err := os.ReadFile(cfg.Dictionary)
	if err != nil {
		return nil, fileAccessErr(cfg.Dictionary, err)
	}

	summary := summarize(req, base, baseView)
	ancestry := viewAncestry(baseView, records)

	f := excelize.NewFile()
	defer f.Close()
	err = f.SetSheetName("Sheet1", summarySheet)
	if err != nil {
		return nil, computationErr("workbook setup", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, computationErr("workbook setup", err)
	}
	for i := range views {
		err = writeViewSheet(f, &views[i], headerStyle)
		if err != nil {
			return nil, computationErr("sheet "+views[i].name, err)
		}
	}
	for i, line := range strings.Split(strings.TrimRight(string(dict), "\n"), "\n") {
		if i == 0 {
			_, err = f.NewSheet(dictionarySheet)
			if err != nil {
				return nil, computationErr("sheet "+dictionarySheet, err)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, computationErr("sheet "+dictionarySheet, err)
		}
		err = f.SetCellStr(dictionarySheet, cell, strings.TrimRight(line, "\r"))
		if err != nil {
			return nil, computationErr("sheet "+dictionarySheet, err)
		}
	}
	err = writeSummarySheet(f, req, views, summary, ancestry)
	if err != nil {
		return nil, computationErr("sheet "+summarySheet, err)
	}
	idx, err := f.GetSheetIndex(summarySheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	path := filepath.Join(cfg.OutputDir, fmt.Sprintf("variant_report_%s.xlsx", req.Timestamp.Format("20060102_150405")))
	// excelize insists on a workbook extension, so the temporary name
	// keeps .xlsx and the rename makes completion atomic-by-convention.
	tmp := strings.TrimSuffix(path, ".xlsx") + ".partial.xlsx"
	err = f.SaveAs(tmp)
	if err != nil {
		return nil, computationErr("writing "+tmp, err)
	}
	err = os.Rename(tmp, path)
	if err != nil {
		return nil, computationErr("renaming "+tmp, err)
	}
	log.Infof("wrote %s (%d sheets)", path, len(views)+2)
	return &Result{Path: path, Summary: summary}, nil
}
