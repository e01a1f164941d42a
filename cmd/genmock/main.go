// Command genmock generates per-state mock county vote return CSVs for the
// scoring test suites. It runs the generated rows through the actual domain
// pipeline so the printed stats match real scoring behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out-dir data/raw \
//	  -states PA,GA,AZ \
//	  -counties 12 \
//	  -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

// Party label variants the standardizer must collapse; the odd casing and the
// junk label are intentional.
var (
	demLabels   = []string{"DEMOCRAT", "DEM", "Democratic", "democrat"}
	repLabels   = []string{"REPUBLICAN", "REP", "republican"}
	otherLabels = []string{"LIBERTARIAN", "GREEN", "OTHER", "write-in", ""}
)

var countyNames = []string{
	"Adams", "Bedford", "Carbon", "Dauphin", "Erie", "Fulton", "Greene",
	"Huntingdon", "Indiana", "Juniata", "Lancaster", "Mercer", "Northampton",
	"Perry", "Somerset", "Tioga", "Union", "Venango", "Warren", "York",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write per-state CSV files into")
	statesFlag := flag.String("states", "PA,GA,AZ", "comma-separated state codes")
	counties := flag.Int("counties", 12, "counties per state")
	yearPrev := flag.Int("year-prev", 2016, "earlier election year")
	yearLatest := flag.Int("year-latest", 2020, "later election year")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}
	if *counties > len(countyNames) {
		return fmt.Errorf("at most %d counties per state", len(countyNames))
	}

	rng := rand.New(rand.NewSource(*seed))
	states := strings.Split(*statesFlag, ",")

	for i, state := range states {
		state = strings.ToUpper(strings.TrimSpace(state))
		rows := generateState(rng, state, i, *counties, *yearPrev, *yearLatest)

		path := filepath.Join(*outDir, fmt.Sprintf("%s_countypres.csv", state))
		if err := writeCSV(path, rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("%s: %d rows -> %s", state, len(rows), path)

		if err := printStats(rows, state, *yearPrev, *yearLatest); err != nil {
			return fmt.Errorf("scoring %s: %w", state, err)
		}
	}
	return nil
}

// generateState emits raw rows for one state: one row per county, year, and
// party label, with a few deliberately dirty values (float FIPS, blank votes)
// that the aggregation stage has to coerce.
func generateState(rng *rand.Rand, state string, stateIdx, counties, yearPrev, yearLatest int) []domain.Row {
	var rows []domain.Row
	for c := 0; c < counties; c++ {
		name := countyNames[c]
		fips := fmt.Sprintf("%d%03d", stateIdx+10, c+1)

		for _, year := range []int{yearPrev, yearLatest} {
			base := 5000 + rng.Intn(200000)
			lean := rng.Float64()*0.4 - 0.2

			dem := int(float64(base) * (0.5 + lean))
			rep := base - dem

			rows = append(rows,
				voteRow(state, name, fipsVariant(rng, fips), year, pick(rng, demLabels), fmt.Sprint(dem)),
				voteRow(state, name, fipsVariant(rng, fips), year, pick(rng, repLabels), fmt.Sprint(rep)),
				voteRow(state, name, fipsVariant(rng, fips), year, pick(rng, otherLabels), votesVariant(rng)),
			)
		}
	}
	return rows
}

func voteRow(state, county, fips string, year int, party, votes string) domain.Row {
	return domain.Row{
		"state_po":         state,
		"county_name":      county,
		"county_fips":      fips,
		"year":             fmt.Sprint(year),
		"party_simplified": party,
		"votes":            votes,
	}
}

// fipsVariant sometimes renders the FIPS the way a float-typed spreadsheet
// column does.
func fipsVariant(rng *rand.Rand, fips string) string {
	if rng.Intn(4) == 0 {
		return fips + ".0"
	}
	return fips
}

// votesVariant sometimes emits the malformed vote counts seen in real files.
func votesVariant(rng *rand.Rand) string {
	switch rng.Intn(10) {
	case 0:
		return ""
	case 1:
		return "NA"
	case 2:
		return fmt.Sprintf("%d.0", rng.Intn(5000))
	default:
		return fmt.Sprint(rng.Intn(5000))
	}
}

func pick(rng *rand.Rand, labels []string) string {
	return labels[rng.Intn(len(labels))]
}

func writeCSV(path string, rows []domain.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{"state_po", "county_name", "county_fips", "year", "party_simplified", "votes"}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(header))
		for i, col := range header {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// printStats runs the generated rows through aggregation, scoring, and tier
// classification and prints the numbers tests assert against.
func printStats(rows []domain.Row, state string, yearPrev, yearLatest int) error {
	table, err := domain.Aggregate(rows, domain.DefaultColumnMapping(), domain.DefaultPartyMatcher())
	if err != nil {
		return err
	}

	scored, err := domain.Score(table, yearPrev, yearLatest, domain.DefaultWeights())
	if err != nil {
		return err
	}
	tiered := domain.AddTiers(scored, domain.DefaultTierBands())

	fmt.Printf("\n=== %s stats for updating test assertions ===\n", state)
	fmt.Printf("County-year rows: %d, scored counties: %d\n", len(table), len(tiered))
	for _, s := range domain.SummarizeTiers(tiered, domain.DefaultTierBands()) {
		fmt.Printf("  %s %s: %d (%.1f%%)\n", s.Icon, s.Tier, s.Count, s.Percentage)
	}
	if len(tiered) > 0 {
		top := tiered[0]
		fmt.Printf("Top county: %s (%s) score=%.4f tier=%s\n",
			top.CountyName, top.CountyFIPS, top.SwingScore, top.Tier)
	}
	return nil
}
