package variantreport

import (
	"strconv"
	"strings"
)

// pathogenicSubstring matches both ClinVar and InterVar casings of
// Pathogenic / Likely pathogenic.
const pathogenicSubstring = "athogenic"

// damagingToolsMin is the minimum number of in-silico tools calling a
// variant damaging for it to reach the damaging sub-view.
const damagingToolsMin = 6

// damagingToolCount parses the leading integer of a Damaging_predictions
// cell ("<int> DMG ..."). An absent or malformed cell counts as zero
// tools; bad score text is a data-quality variation, not an error.
func damagingToolCount(cell string) int {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// subView keeps the rows of tbl satisfying keep, with all columns.
func subView(tbl *variantTable, name string, keep func(row []string) bool) reportView {
	var rows [][]string
	for _, row := range tbl.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return reportView{
		name:      name,
		header:    tbl.header,
		rows:      rows,
		annoWidth: len(tbl.schema.annotation),
	}
}

// pathogenicViews derives the three significance/score sub-views from
// the merged base table. They are not cohort-restricted: each keeps
// every sample column.
func pathogenicViews(tbl *variantTable) []reportView {
	clnsigCol := tbl.schema.annoCol[clnsigColumn]
	intervarCol := tbl.schema.annoCol[intervarColumn]
	damagingCol := tbl.schema.annoCol[damagingColumn]
	return []reportView{
		subView(tbl, "ClinVar Pathogenic", func(row []string) bool {
			return strings.Contains(row[clnsigCol], pathogenicSubstring)
		}),
		subView(tbl, "InterVar Pathogenic", func(row []string) bool {
			return strings.Contains(row[intervarCol], pathogenicSubstring)
		}),
		subView(tbl, "Damaging 6+ Tools", func(row []string) bool {
			return damagingToolCount(row[damagingCol]) >= damagingToolsMin
		}),
	}
}
