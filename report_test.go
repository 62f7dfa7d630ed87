package variantreport

import (
	"gopkg.in/check.v1"
)

type reportSuite struct{}

var _ = check.Suite(&reportSuite{})

func (s *reportSuite) TestSummarizeMatchesBaseView(c *check.C) {
	sampleCols, variants := threeRowScenario()
	tbl := testTable(c, sampleCols, variants)
	base := filterBase(tbl, geneSet{"SOD1": true, "FUS": true}, false)
	v := materializeView(base, "All Samples", sampleSet{"S1": true, "S2": true})

	summary := summarize(Request{Population: PopulationAll}, base, &v)
	c.Check(summary.Variants, check.Equals, len(base.rows))
	// participating samples == view columns minus annotation columns
	c.Check(summary.Samples, check.Equals, len(v.header)-v.annoWidth)
	c.Check(summary.Genes, check.Equals, 2)
	c.Check(summary.ClassCounts, check.DeepEquals, map[string]int{
		"nonsynonymous SNV": 1,
		"stopgain":          1,
	})
}

func (s *reportSuite) TestFilterDescription(c *check.C) {
	desc := filterDescription(Request{
		Panel:      PanelALS,
		Population: PopulationCases,
	})
	c.Check(desc, check.Equals, "gene panel: als; population: ALS Cases; synonymous variants excluded; all ancestries")

	desc = filterDescription(Request{
		Panel:             PanelCustom,
		Population:        PopulationAll,
		IncludeSynonymous: true,
		EuropeanOnly:      true,
	})
	c.Check(desc, check.Equals, "gene panel: custom; population: All Samples; synonymous variants included; European ancestry >= 0.85")
}

func (s *reportSuite) TestViewAncestry(c *check.C) {
	sampleCols, variants := threeRowScenario()
	tbl := testTable(c, sampleCols, variants)
	v := materializeView(tbl, "view", sampleSet{"S1": true, "S2": true})
	records := []*metadataRecord{
		{ParticipantID: "S1", PctEuropean: "0.99"},
		{ParticipantID: "S2", PctEuropean: "0.80"},
		{ParticipantID: "S3", PctEuropean: "0.50"}, // not in the table
	}
	xs := viewAncestry(&v, records)
	c.Check(xs, check.DeepEquals, []float64{0.99, 0.80})
}
