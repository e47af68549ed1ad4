package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"airbnb-webmap/models"
)

// CSVSource reads listings from a header-mapped CSV file. Columns may appear
// in any order and columns outside RequiredColumns are ignored.
type CSVSource struct {
	Path string
}

// NewCSVSource returns a source reading the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// ReadListings opens the file and parses every row.
func (s *CSVSource) ReadListings() ([]models.Listing, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &models.DataLoadError{Source: s.Name(), Reason: "open file", Err: err}
	}
	defer f.Close()

	return readCSV(s.Name(), f)
}

func readCSV(source string, r io.Reader) ([]models.Listing, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.DataLoadError{Source: source, Reason: "missing header row"}
	}
	if err != nil {
		return nil, &models.DataLoadError{Source: source, Reason: "read header", Err: err}
	}

	positions, err := columnPositions(header)
	if err != nil {
		return nil, &models.DataLoadError{Source: source, Reason: "check columns", Err: err}
	}

	var listings []models.Listing
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.DataLoadError{Source: source, Reason: "parse csv", Err: err}
		}

		var row rawRow
		for i, pos := range positions {
			if pos < len(record) {
				row[i] = record[pos]
			}
		}

		listing, err := row.toListing()
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, &models.DataLoadError{
				Source: source,
				Reason: fmt.Sprintf("invalid row at line %d", line),
				Err:    err,
			}
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// columnPositions maps each required column to its index in the header.
func columnPositions(header []string) ([]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	positions := make([]int, len(RequiredColumns))
	var missing []string
	for i, col := range RequiredColumns {
		pos, ok := index[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return positions, nil
}
