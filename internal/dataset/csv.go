package dataset

import (
	"encoding/csv"
	"strconv"
	"strings"

	"goscatter/internal/errors"
)

// LoadCSV reads records from a CSV file with price, scores and sold columns.
// Header matching is case-insensitive; "score" and "value" are accepted for
// the scores column.
func LoadCSV(path string, opts DecodeOptions) ([]Record, []Issue, error) {
	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv %s", path)
	}
	if len(recs) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "empty csv")
	}
	idxPrice, idxScores, idxSold := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "price":
			if idxPrice == -1 {
				idxPrice = i
			}
		case "scores", "score", "value":
			if idxScores == -1 {
				idxScores = i
			}
		case "sold":
			if idxSold == -1 {
				idxSold = i
			}
		}
	}
	if idxPrice == -1 || idxScores == -1 || idxSold == -1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "csv: price/scores/sold columns not found")
	}

	var records []Record
	var issues []Issue
	for n, row := range recs[1:] {
		rec, reason := parseRow(row, idxPrice, idxScores, idxSold)
		if reason != "" {
			if opts.Strict {
				return nil, nil, errors.New(errors.ErrCodeInvalidRecord, "record %d: %s", n, reason)
			}
			issues = append(issues, Issue{Index: n, Reason: reason})
			continue
		}
		records = append(records, rec)
	}
	return records, issues, nil
}

func parseRow(row []string, idxPrice, idxScores, idxSold int) (Record, string) {
	if idxPrice >= len(row) || idxScores >= len(row) || idxSold >= len(row) {
		return Record{}, "short row"
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[idxPrice]), 64)
	if err != nil || !finite(price) {
		return Record{}, "price is not a finite number"
	}
	scores, err := strconv.ParseFloat(strings.TrimSpace(row[idxScores]), 64)
	if err != nil || !finite(scores) {
		return Record{}, "scores is not a finite number"
	}
	sold, err := strconv.ParseBool(strings.TrimSpace(row[idxSold]))
	if err != nil {
		return Record{}, "sold is not a boolean"
	}
	return Record{Price: price, Scores: scores, Sold: sold}, ""
}
