package variantreport

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries every file path and tuning knob the pipeline needs.
// The caller builds one Config up front and threads it through the
// whole run; the pipeline keeps no package-level path state.
type Config struct {
	ALSGeneList  string `envconfig:"VARIANTREPORT_ALS_GENES"`
	FTDGeneList  string `envconfig:"VARIANTREPORT_FTD_GENES"`
	MetadataFile string `envconfig:"VARIANTREPORT_METADATA"`
	VariantTable string `envconfig:"VARIANTREPORT_VARIANT_TABLE"`
	GeneCategory string `envconfig:"VARIANTREPORT_GENE_CATEGORIES"`
	Dictionary   string `envconfig:"VARIANTREPORT_DATA_DICTIONARY"`
	OutputDir    string `envconfig:"VARIANTREPORT_OUTPUT_DIR"`

	// ChunkRows bounds how many variant rows are decoded per read
	// chunk during ingestion. It limits peak memory of the transfer
	// only: the concatenated table is still fully materialized.
	ChunkRows int `envconfig:"VARIANTREPORT_CHUNK_ROWS"`
}

// DefaultConfig returns a Config with conventional relative paths,
// then applies any VARIANTREPORT_* environment overrides.
func DefaultConfig() (Config, error) {
	cfg := Config{
		ALSGeneList:  "data/als_genes.txt",
		FTDGeneList:  "data/ftd_genes.txt",
		MetadataFile: "data/sample_metadata.tsv",
		VariantTable: "data/variant_table.tsv.gz",
		GeneCategory: "data/gene_categories.tsv",
		Dictionary:   "data/data_dictionary.txt",
		OutputDir:    "reports",
		ChunkRows:    20000,
	}
	err := envconfig.Process("", &cfg)
	if err != nil {
		return cfg, err
	}
	if cfg.ChunkRows <= 0 {
		cfg.ChunkRows = 20000
	}
	return cfg, nil
}
