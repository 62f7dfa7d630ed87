package variantreport

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

const (
	// europeanAncestryMin is the inclusive lower bound of the
	// European-ancestry fraction filter.
	europeanAncestryMin = 0.85
	// repeatExpansionMin is the repeat length a subject's larger
	// allele must exceed (strictly) to count as an expansion carrier.
	repeatExpansionMin = 26

	caseGroup    = "ALS Spectrum MND"
	controlGroup = "Non-Neurological Control"
)

type metadataRecord struct {
	ParticipantID string `csv:"Participant_ID"`
	Project       string `csv:"Project"`
	SubjectGroup  string `csv:"Subject_Group"`
	PctEuropean   string `csv:"Pct_European"`
	C9Repeats     string `csv:"C9orf72_Repeat_Sizes"`
	ATXN2Repeats  string `csv:"ATXN2_Repeat_Sizes"`
}

var metadataColumns = []string{
	"Participant_ID",
	"Project",
	"Subject_Group",
	"Pct_European",
	"C9orf72_Repeat_Sizes",
	"ATXN2_Repeat_Sizes",
}

func tabReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true
	return r
}

// gocsv's reader is a package global; configure it once so no request
// ever writes shared state mid-pipeline.
func init() {
	gocsv.SetCSVReader(tabReader)
}

// loadMetadata reads the sample metadata table. The header must carry
// every column in metadataColumns; per-cell oddities (blank or
// unparseable fractions and repeat fields) are handled downstream, not
// here.
func loadMetadata(fnm string) ([]*metadataRecord, error) {
	buf, err := os.ReadFile(fnm)
	if err != nil {
		return nil, fileAccessErr(fnm, err)
	}
	header := strings.Split(strings.SplitN(strings.TrimPrefix(string(buf), "\ufeff"), "\n", 2)[0], "\t")
	have := map[string]bool{}
	for _, col := range header {
		have[strings.TrimRight(col, "\r")] = true
	}
	for _, col := range metadataColumns {
		if !have[col] {
			return nil, parseErrf("%s: missing required column %q", fnm, col)
		}
	}
	var records []*metadataRecord
	err = gocsv.UnmarshalBytes(buf, &records)
	if err != nil {
		return nil, parseErr(fnm, err)
	}
	log.Infof("loaded metadata for %d subjects from %s", len(records), fnm)
	return records, nil
}

// ancestryFraction returns the subject's European-ancestry fraction,
// or 0 when the field is blank or unparseable. A bad fraction is a
// data-quality variation, not a structural failure.
func ancestryFraction(rec *metadataRecord) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(rec.PctEuropean), 64)
	if err != nil {
		if strings.TrimSpace(rec.PctEuropean) != "" {
			log.Debugf("subject %s: unparseable ancestry fraction %q, treating as 0", rec.ParticipantID, rec.PctEuropean)
		}
		return 0
	}
	return f
}

// maxRepeat parses a "<int>/<int>" repeat-length field and returns the
// larger allele. ok is false when the field is absent or either side
// fails to parse; such subjects simply do not qualify as carriers.
func maxRepeat(field string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(field), "/")
	if len(parts) != 2 {
		return 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if b > a {
		a = b
	}
	return a, true
}

// sampleSet is a set of subject/sample identifiers.
type sampleSet map[string]bool

func (s sampleSet) intersect(other sampleSet) sampleSet {
	out := sampleSet{}
	for id := range s {
		if other[id] {
			out[id] = true
		}
	}
	return out
}

// cohorts holds the named sample sets derived from metadata. Every set
// is already restricted to the universe, so the ancestry filter (when
// requested) applies uniformly to all of them. Intersection with the
// variant table's actual sample columns happens later, at view time.
type cohorts struct {
	universe sampleSet
	cases    sampleSet
	controls sampleSet
	c9       sampleSet
	atxn2    sampleSet
}

// buildCohorts derives the named cohorts from the metadata table.
func buildCohorts(records []*metadataRecord, europeanOnly bool) cohorts {
	ch := cohorts{
		universe: sampleSet{},
		cases:    sampleSet{},
		controls: sampleSet{},
		c9:       sampleSet{},
		atxn2:    sampleSet{},
	}
	for _, rec := range records {
		if rec.ParticipantID == "" {
			continue
		}
		if europeanOnly && ancestryFraction(rec) < europeanAncestryMin {
			continue
		}
		ch.universe[rec.ParticipantID] = true
		switch rec.SubjectGroup {
		case caseGroup:
			ch.cases[rec.ParticipantID] = true
		case controlGroup:
			ch.controls[rec.ParticipantID] = true
		}
		if max, ok := maxRepeat(rec.C9Repeats); ok && max > repeatExpansionMin {
			ch.c9[rec.ParticipantID] = true
		}
		if max, ok := maxRepeat(rec.ATXN2Repeats); ok && max > repeatExpansionMin {
			ch.atxn2[rec.ParticipantID] = true
		}
	}
	log.Infof("cohorts: %d in universe, %d cases, %d controls, %d C9orf72 carriers, %d ATXN2 carriers (europeanOnly=%v)",
		len(ch.universe), len(ch.cases), len(ch.controls), len(ch.c9), len(ch.atxn2), europeanOnly)
	return ch
}
