package variantreport

import (
	"os"
	"sort"
	"strings"
)

// geneSet is a deduplicated set of gene symbols. genes() returns the
// members sorted so downstream output never depends on map iteration
// order.
type geneSet map[string]bool

func (gs geneSet) genes() []string {
	out := make([]string, 0, len(gs))
	for g := range gs {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// resolveGeneSet turns the request's panel selector (plus free text,
// for the custom panel) into a concrete gene set. Curated panels are
// newline-delimited symbol files with no header.
func resolveGeneSet(cfg Config, req Request) (geneSet, error) {
	var raw string
	switch req.Panel {
	case PanelALS, PanelFTD:
		fnm := cfg.ALSGeneList
		if req.Panel == PanelFTD {
			fnm = cfg.FTDGeneList
		}
		buf, err := os.ReadFile(fnm)
		if err != nil {
			return nil, fileAccessErr(fnm, err)
		}
		raw = string(buf)
	case PanelCustom:
		raw = req.CustomGenes
	default:
		return nil, validationErrf("unknown gene panel %q", req.Panel)
	}
	gs := geneSet{}
	for _, field := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}) {
		gene := strings.TrimSpace(field)
		if gene != "" {
			gs[gene] = true
		}
	}
	if len(gs) == 0 {
		return nil, validationErrf("gene panel %q resolved to an empty gene set", req.Panel)
	}
	return gs, nil
}
