package validate

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Ragansu/fair-universe/pkg/schema"
	"github.com/Ragansu/fair-universe/pkg/stats"
)

// DefaultMaxIssues caps the issues kept on a report. Counting continues past
// the cap.
const DefaultMaxIssues = 100

// Report aggregates the findings of a file validation.
type Report struct {
	Rows        int
	InvalidRows int
	TotalIssues int
	// Issues holds at most the validator's MaxIssues findings.
	Issues []Issue
	// Columns summarises every non-meta column plus Weight, with sentinel
	// observations kept out of the moments.
	Columns map[string]*stats.Running
	Weights stats.ClassWeights
}

// OK reports whether the file matched the schema everywhere.
func (r *Report) OK() bool { return r.TotalIssues == 0 }

// Validator streams a dataset file and checks every row.
type Validator struct {
	// MaxIssues caps the issues kept on the report; <= 0 means
	// DefaultMaxIssues.
	MaxIssues int
	// OnIssue, when set, observes every finding as it is made, before any
	// cap applies.
	OnIssue func(Issue)
	// Done stops the scan early when closed, for example once OnIssue has
	// seen enough. The report then covers only the rows read so far.
	Done <-chan struct{}
}

// File validates the named CSV file.
func (v *Validator) File(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	defer f.Close()
	return v.Reader(f)
}

// Reader validates a CSV stream in one pass with constant memory, apart from
// the duplicate-id set.
func (v *Validator) Reader(r io.Reader) (*Report, error) {
	max := v.MaxIssues
	if max <= 0 {
		max = DefaultMaxIssues
	}

	rep := &Report{Columns: make(map[string]*stats.Running)}
	for _, f := range schema.Fields() {
		if f.Group != schema.Meta || f.Name == "Weight" {
			rep.Columns[f.Name] = &stats.Running{}
		}
	}

	record := func(issues []Issue) {
		if len(issues) == 0 {
			return
		}
		rep.InvalidRows++
		rep.TotalIssues += len(issues)
		for _, is := range issues {
			if v.OnIssue != nil {
				v.OnIssue(is)
			}
			if len(rep.Issues) < max {
				rep.Issues = append(rep.Issues, is)
			}
		}
	}

	cr := csv.NewReader(bufio.NewReader(r))
	cr.ReuseRecord = true
	// Column-count mismatches are a finding, not an abort.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("validate: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("validate: read header: %w", err)
	}
	if issues := CheckHeader(header); len(issues) > 0 {
		rep.TotalIssues += len(issues)
		for _, is := range issues {
			if v.OnIssue != nil {
				v.OnIssue(is)
			}
			if len(rep.Issues) < max {
				rep.Issues = append(rep.Issues, is)
			}
		}
	}

	seen := make(map[int64]struct{})
	line := 1
	for {
		select {
		case <-v.Done:
			return rep, nil
		default:
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("validate: line %d: %w", line+1, err)
		}
		line++
		rep.Rows++

		e, issues := CheckRow(rec, line)
		if len(issues) > 0 && (issues[0].Code == CodeColumnCount || issues[0].Code == CodeParse) {
			record(issues)
			continue
		}

		if _, dup := seen[e.EventID]; dup {
			issues = append(issues, Issue{Line: line, Field: "EventId", Code: CodeDuplicateID,
				Msg: fmt.Sprintf("id %d already seen", e.EventID)})
		}
		seen[e.EventID] = struct{}{}
		record(issues)

		vals := e.Values()
		for i, f := range schema.Fields() {
			run, ok := rep.Columns[f.Name]
			if !ok {
				continue
			}
			if vals[i] == schema.Sentinel {
				run.AddUndefined()
			} else {
				run.Add(vals[i])
			}
		}
		rep.Weights.Total += e.Weight
		if e.Label == schema.SignalLabel {
			rep.Weights.Signal += e.Weight
		} else {
			rep.Weights.Background += e.Weight
		}
	}
	return rep, nil
}
