package variantreport

import (
	"errors"
	"os"

	"gopkg.in/check.v1"
)

type configSuite struct{}

var _ = check.Suite(&configSuite{})

func (s *configSuite) TestDefaultConfig(c *check.C) {
	cfg, err := DefaultConfig()
	c.Assert(err, check.IsNil)
	c.Check(cfg.VariantTable, check.Equals, "data/variant_table.tsv.gz")
	c.Check(cfg.ChunkRows, check.Equals, 20000)
}

func (s *configSuite) TestEnvOverrides(c *check.C) {
	os.Setenv("VARIANTREPORT_OUTPUT_DIR", "/srv/reports")
	os.Setenv("VARIANTREPORT_CHUNK_ROWS", "500")
	defer os.Unsetenv("VARIANTREPORT_OUTPUT_DIR")
	defer os.Unsetenv("VARIANTREPORT_CHUNK_ROWS")
	cfg, err := DefaultConfig()
	c.Assert(err, check.IsNil)
	c.Check(cfg.OutputDir, check.Equals, "/srv/reports")
	c.Check(cfg.ChunkRows, check.Equals, 500)
}

func (s *configSuite) TestErrorKinds(c *check.C) {
	cause := errors.New("boom")
	err := fileAccessErr("some/file", cause)
	c.Check(Kind(err), check.Equals, ErrFileAccess)
	c.Check(errors.Is(err, cause), check.Equals, true)
	c.Check(err, check.ErrorMatches, `file access error: some/file: boom`)

	c.Check(Kind(validationErrf("empty set")), check.Equals, ErrValidation)
	c.Check(Kind(parseErrf("bad row %d", 7)), check.Equals, ErrParse)
	c.Check(Kind(computationErr("write", cause)), check.Equals, ErrComputation)
	c.Check(Kind(cause), check.Equals, ErrUnknown)
}
