package variantreport

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/check.v1"
)

type tableSuite struct{}

var _ = check.Suite(&tableSuite{})

func (s *tableSuite) TestReadVariantTable(c *check.C) {
	sampleCols, variants := threeRowScenario()
	fnm := writeTestVariantTable(c, c.MkDir(), sampleCols, variants)
	// chunk size 1 forces a chunk boundary at every row
	tbl, err := readVariantTable(fnm, 1)
	c.Assert(err, check.IsNil)
	c.Check(tbl.rows, check.HasLen, 3)
	c.Check(tbl.schema.annotation, check.DeepEquals, testAnnotationColumns)
	c.Check(tbl.schema.samples, check.DeepEquals, []string{"S1", "S2_GRCh38"})
	// suffix-stripped identifiers map to the original columns
	c.Check(tbl.schema.sampleCol["S1"], check.Equals, annotationColumnCount)
	c.Check(tbl.schema.sampleCol["S2"], check.Equals, annotationColumnCount+1)
	c.Check(tbl.header[annotationColumnCount+1], check.Equals, "S2_GRCh38")
	c.Check(tbl.schema.sampleUniverse(), check.DeepEquals, sampleSet{"S1": true, "S2": true})
}

func (s *tableSuite) TestRowColumnCountMismatch(c *check.C) {
	dir := c.MkDir()
	header := strings.Join(append(append([]string{}, testAnnotationColumns...), "S1"), "\t")
	fnm := writeTestFile(c, dir, "table.tsv", header+"\nchr1\tonly\tthree\n")
	_, err := readVariantTable(fnm, 100)
	c.Assert(err, check.NotNil)
	c.Check(Kind(err), check.Equals, ErrParse)
}

func (s *tableSuite) TestHeaderTooNarrow(c *check.C) {
	fnm := writeTestFile(c, c.MkDir(), "table.tsv", strings.Join(testAnnotationColumns, "\t")+"\n")
	_, err := readVariantTable(fnm, 100)
	c.Assert(err, check.NotNil)
	c.Check(Kind(err), check.Equals, ErrParse)
}

func (s *tableSuite) TestMissingRequiredAnnotationColumn(c *check.C) {
	cols := append([]string{}, testAnnotationColumns...)
	cols[18] = "SomethingElse" // clobber InterVar_automated
	fnm := writeTestFile(c, c.MkDir(), "table.tsv", strings.Join(append(cols, "S1"), "\t")+"\n")
	_, err := readVariantTable(fnm, 100)
	c.Assert(err, check.NotNil)
	c.Check(Kind(err), check.Equals, ErrParse)
	c.Check(err, check.ErrorMatches, `.*InterVar_automated.*`)
}

func (s *tableSuite) TestDuplicateSampleAfterSuffixStrip(c *check.C) {
	fnm := writeTestFile(c, c.MkDir(), "table.tsv",
		strings.Join(append(append([]string{}, testAnnotationColumns...), "S1", "S1_GRCh38"), "\t")+"\n")
	_, err := readVariantTable(fnm, 100)
	c.Assert(err, check.NotNil)
	c.Check(Kind(err), check.Equals, ErrParse)
}

func (s *tableSuite) TestMissingFile(c *check.C) {
	_, err := readVariantTable(filepath.Join(c.MkDir(), "nope.tsv.gz"), 100)
	c.Assert(err, check.NotNil)
	c.Check(Kind(err), check.Equals, ErrFileAccess)
	c.Check(os.IsNotExist(err), check.Equals, false) // wrapped, not raw
}

func (s *tableSuite) TestIsCall(c *check.C) {
	c.Check(isCall("'0/0"), check.Equals, false)
	c.Check(isCall("'./."), check.Equals, false)
	c.Check(isCall(""), check.Equals, false)
	c.Check(isCall("0/1"), check.Equals, true)
	c.Check(isCall("1/1"), check.Equals, true)
	// the leading quote is load-bearing: unquoted 0/0 is not a sentinel
	c.Check(isCall("0/0"), check.Equals, true)
}
