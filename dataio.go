package nibtb

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/anthonyohare/nibtb/internal/stats"
)

// ReadFarmIDs reads a farm id list file, one integer id per line
// (§6 "Farm ids").
func ReadFarmIDs(path string) ([]int, error) {
	var ids []int
	err := scanLines(path, func(line string) error {
		id, err := strconv.Atoi(line)
		if err != nil {
			return errors.Wrapf(err, "parsing farm id")
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}

// SettDefinition is one parsed line from the sett ids file: a sett
// id and the farm ids it connects to.
type SettDefinition struct {
	SettID  string
	FarmIDs []int
}

// ReadSettDefinitions reads the sett ids file, lines shaped
// "settId:farm1,farm2,..." (§6 "Sett ids").
func ReadSettDefinitions(path string) ([]SettDefinition, error) {
	var out []SettDefinition
	err := scanLines(path, func(line string) error {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return errors.Errorf("expected settId:farm1,farm2,..., got %q", line)
		}
		farmIDs, err := parseIntCSV(parts[1])
		if err != nil {
			return errors.Wrapf(err, "parsing sett %s farm list", parts[0])
		}
		out = append(out, SettDefinition{SettID: parts[0], FarmIDs: farmIDs})
		return nil
	})
	return out, err
}

// SlaughterhouseMove is one parsed line from the slaughterhouse moves
// file: a date and the farms that dispatched animals on that date.
type SlaughterhouseMove struct {
	Date    int
	FarmIDs []int
}

// ReadSlaughterhouseMoves reads the slaughterhouse moves file, lines
// shaped "date:farm1,farm2,..." (§6 "Slaughterhouse moves").
func ReadSlaughterhouseMoves(path string) ([]SlaughterhouseMove, error) {
	var out []SlaughterhouseMove
	err := scanLines(path, func(line string) error {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return errors.Errorf("expected date:farm1,farm2,..., got %q", line)
		}
		date, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return errors.Wrapf(err, "parsing slaughterhouse move date")
		}
		farmIDs, err := parseIntCSV(parts[1])
		if err != nil {
			return errors.Wrapf(err, "parsing slaughterhouse move farm list")
		}
		out = append(out, SlaughterhouseMove{Date: date, FarmIDs: farmIDs})
		return nil
	})
	return out, err
}

// ReadObservedSNPDistribution reads the observed SNP pairwise distance
// distribution file, lines shaped "x:frequency" (§6).
func ReadObservedSNPDistribution(path string) (*stats.IntHistogram, error) {
	h := stats.NewIntHistogram()
	err := scanLines(path, func(line string) error {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return errors.Errorf("expected x:frequency, got %q", line)
		}
		bin, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return errors.Wrapf(err, "parsing observed SNP bin")
		}
		freq, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return errors.Wrapf(err, "parsing observed SNP frequency")
		}
		h.TallyN(bin, freq)
		return nil
	})
	return h, err
}

// ReadSamplingRates reads the sampling rate CSV file: column 0 is the
// year, column 3 is the rate; lines starting with '#' are comments
// (§6 "Sampling rates").
func ReadSamplingRates(path string) (map[int]float64, error) {
	rates := make(map[int]float64)
	err := scanLines(path, func(line string) error {
		cols := strings.Split(line, ",")
		if len(cols) < 4 {
			return errors.Errorf("expected at least 4 CSV columns, got %q", line)
		}
		year, err := strconv.Atoi(strings.TrimSpace(cols[0]))
		if err != nil {
			return errors.Wrapf(err, "parsing sampling rate year")
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(cols[3]), 64)
		if err != nil {
			return errors.Wrapf(err, "parsing sampling rate")
		}
		rates[year] = rate
		return nil
	})
	return rates, err
}

// ReadMovementFrequencies reads the movement frequencies file, lines
// shaped "farmA-farmB count1,count2,..." (§6). Self-moves (farmA ==
// farmB) are ignored.
func ReadMovementFrequencies(path string) ([]MovementFrequency, error) {
	var out []MovementFrequency
	err := scanLines(path, func(line string) error {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return errors.Errorf("expected \"farmA-farmB count1,count2,...\", got %q", line)
		}
		pair := strings.SplitN(fields[0], "-", 2)
		if len(pair) != 2 {
			return errors.Errorf("expected farmA-farmB, got %q", fields[0])
		}
		departure, err := strconv.Atoi(pair[0])
		if err != nil {
			return errors.Wrapf(err, "parsing movement departure farm")
		}
		destination, err := strconv.Atoi(pair[1])
		if err != nil {
			return errors.Wrapf(err, "parsing movement destination farm")
		}
		if departure == destination {
			return nil
		}
		counts, err := parseIntCSV(fields[1])
		if err != nil {
			return errors.Wrapf(err, "parsing movement counts")
		}
		out = append(out, MovementFrequency{Departure: departure, Destination: destination, Counts: counts})
		return nil
	})
	return out, err
}

// scanLines opens path and invokes fn for each non-blank,
// non-comment line.
func scanLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return errors.Wrapf(err, "%s:%d", path, lineNum)
		}
	}
	return scanner.Err()
}

func parseIntCSV(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
