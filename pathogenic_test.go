package variantreport

import (
	"gopkg.in/check.v1"
)

type pathogenicSuite struct{}

var _ = check.Suite(&pathogenicSuite{})

func (s *pathogenicSuite) TestDamagingToolCount(c *check.C) {
	for _, trial := range []struct {
		cell string
		want int
	}{
		{"7 DMG out of 20", 7},
		{"0 DMG out of 20", 0},
		{"12 DMG", 12},
		{"", 0},
		{".", 0},
		{"DMG 7", 0},
		{"-3 DMG out of 20", 0},
	} {
		c.Check(damagingToolCount(trial.cell), check.Equals, trial.want, check.Commentf("cell %q", trial.cell))
	}
}

func (s *pathogenicSuite) TestPathogenicViews(c *check.C) {
	sampleCols := []string{"S1"}
	variants := []testVariant{
		{gene: "SOD1", clnsig: "Pathogenic", intervar: "Benign", damaging: "7 DMG out of 20", genotypes: []string{"0/1"}},
		{gene: "FUS", clnsig: "Likely pathogenic", intervar: "Likely pathogenic", damaging: "5 DMG out of 20", genotypes: []string{"'0/0"}},
		{gene: "NEK1", clnsig: "Conflicting interpretations of pathogenicity", intervar: "Uncertain significance", damaging: "6 DMG out of 20", genotypes: []string{"'./."}},
		{gene: "VCP", clnsig: "Benign", intervar: "Pathogenic", damaging: "not scored", genotypes: []string{"0/1"}},
	}
	tbl := testTable(c, sampleCols, variants)
	views := pathogenicViews(tbl)
	c.Assert(views, check.HasLen, 3)

	geneCol := tbl.schema.annoCol[geneColumn]
	genes := func(v reportView) []string {
		var out []string
		for _, row := range v.rows {
			out = append(out, row[geneCol])
		}
		return out
	}

	c.Check(views[0].name, check.Equals, "ClinVar Pathogenic")
	c.Check(genes(views[0]), check.DeepEquals, []string{"SOD1", "FUS", "NEK1"})
	c.Check(views[1].name, check.Equals, "InterVar Pathogenic")
	c.Check(genes(views[1]), check.DeepEquals, []string{"FUS", "VCP"})
	c.Check(views[2].name, check.Equals, "Damaging 6+ Tools")
	c.Check(genes(views[2]), check.DeepEquals, []string{"SOD1", "NEK1"})

	// sub-views are not cohort-restricted: all columns survive
	for _, v := range views {
		c.Check(v.header, check.HasLen, len(tbl.header))
		c.Check(v.sampleCount(), check.Equals, 1)
	}
}
