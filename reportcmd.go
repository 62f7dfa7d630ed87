package variantreport

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// reportcmd runs one report pipeline invocation from the command line.
// Interactive front-ends use Start directly; this command is the
// scripted caller.
type reportcmd struct{}

func (cmd *reportcmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	cfg, err := DefaultConfig()
	if err != nil {
		return 2
	}
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	title := flags.String("title", "Variant Report", "report `title` shown on the summary sheet")
	panel := flags.String("panel", string(PanelALS), "gene panel: als, ftd, or custom")
	genes := flags.String("genes", "", "comma- or newline-separated gene `list` (custom panel only)")
	population := flags.String("population", string(PopulationAll), "population for headline statistics: all, cases, or controls")
	includeSynonymous := flags.Bool("include-synonymous", false, "keep synonymous variants in the filtered table")
	europeanOnly := flags.Bool("european-only", false, "restrict to subjects with European ancestry fraction >= 0.85")
	flags.StringVar(&cfg.ALSGeneList, "als-genes", cfg.ALSGeneList, "ALS gene panel `file`")
	flags.StringVar(&cfg.FTDGeneList, "ftd-genes", cfg.FTDGeneList, "FTD gene panel `file`")
	flags.StringVar(&cfg.MetadataFile, "metadata", cfg.MetadataFile, "sample metadata `file`")
	flags.StringVar(&cfg.VariantTable, "variant-table", cfg.VariantTable, "gzip variant table `file`")
	flags.StringVar(&cfg.GeneCategory, "gene-categories", cfg.GeneCategory, "gene category reference `file`")
	flags.StringVar(&cfg.Dictionary, "dictionary", cfg.Dictionary, "data dictionary `file`")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "output `directory`")
	flags.IntVar(&cfg.ChunkRows, "chunk-rows", cfg.ChunkRows, "variant rows decoded per ingest chunk")
	loglevel := flags.String("loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() > 0 {
		err = fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
		return 2
	}

	lvl, err := log.ParseLevel(*loglevel)
	if err != nil {
		return 2
	}
	log.SetLevel(lvl)

	req := Request{
		Title:             *title,
		Panel:             Panel(*panel),
		CustomGenes:       *genes,
		Population:        Population(*population),
		IncludeSynonymous: *includeSynonymous,
		EuropeanOnly:      *europeanOnly,
		Timestamp:         time.Now(),
	}
	outcome := <-Start(cfg, req)
	if outcome.Err != nil {
		err = outcome.Err
		return 1
	}
	err = json.NewEncoder(stdout).Encode(outcome.Result)
	if err != nil {
		return 1
	}
	return 0
}
