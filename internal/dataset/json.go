package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"goscatter/internal/errors"
)

// DecodeOptions controls record validation.
type DecodeOptions struct {
	// Strict rejects the whole document on the first malformed record.
	// Otherwise malformed records are skipped and reported as issues.
	Strict bool
}

type rawRecord struct {
	Price  *float64 `json:"price"`
	Scores *float64 `json:"scores"`
	Sold   *bool    `json:"sold"`
}

// Decode reads a JSON array of {price, scores, sold} objects.
func Decode(r io.Reader, opts DecodeOptions) ([]Record, []Issue, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "expected a JSON array of records")
	}

	records := make([]Record, 0, len(raw))
	var issues []Issue
	for i, msg := range raw {
		rec, reason := decodeRecord(msg)
		if reason != "" {
			if opts.Strict {
				return nil, nil, errors.New(errors.ErrCodeInvalidRecord, "record %d: %s", i, reason)
			}
			issues = append(issues, Issue{Index: i, Reason: reason})
			continue
		}
		records = append(records, rec)
	}
	return records, issues, nil
}

func decodeRecord(msg json.RawMessage) (Record, string) {
	var rr rawRecord
	if err := json.Unmarshal(msg, &rr); err != nil {
		return Record{}, err.Error()
	}
	switch {
	case rr.Price == nil:
		return Record{}, "missing price"
	case rr.Scores == nil:
		return Record{}, "missing scores"
	case rr.Sold == nil:
		return Record{}, "missing sold"
	case !finite(*rr.Price):
		return Record{}, "price is not a finite number"
	case !finite(*rr.Scores):
		return Record{}, "scores is not a finite number"
	}
	return Record{Price: *rr.Price, Scores: *rr.Scores, Sold: *rr.Sold}, ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Load reads records from path. ".json" and ".csv" are supported; "-" reads
// JSON from stdin.
func Load(path string, opts DecodeOptions) ([]Record, []Issue, error) {
	if path == "-" {
		return Decode(os.Stdin, opts)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		f, err := open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return Decode(f, opts)
	case ".csv":
		return LoadCSV(path, opts)
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported file %q", filepath.Base(path))
	}
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

func (i Issue) String() string {
	return fmt.Sprintf("record %d: %s", i.Index, i.Reason)
}
