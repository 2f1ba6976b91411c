// Package validate checks dataset files against the canonical event schema:
// exact column set, parseable kinds, value domains, and the undefined-value
// sentinel rules keyed on jet multiplicity.
package validate

import (
	"fmt"
	"math"

	"github.com/Ragansu/fair-universe/pkg/event"
	"github.com/Ragansu/fair-universe/pkg/schema"
)

// Code identifies a class of validation failure.
type Code string

const (
	CodeHeader        Code = "header"          // header differs from the canonical column list
	CodeColumnCount   Code = "column_count"    // row has the wrong number of columns
	CodeParse         Code = "parse"           // value does not parse as its kind
	CodeNotFinite     Code = "not_finite"      // NaN or infinity
	CodeJetNumDomain  Code = "jet_num_domain"  // PRI_jet_num outside {0,1,2,3}
	CodeLabelDomain   Code = "label_domain"    // Label outside {0,1}
	CodeWeightDomain  Code = "weight_domain"   // Weight not strictly positive
	CodeMustBeDefined Code = "must_be_defined" // sentinel outside its documented condition
	CodeMustBeAbsent  Code = "must_be_absent"  // real value where the schema requires the sentinel
	CodeDuplicateID   Code = "duplicate_id"    // EventId already seen in this file
)

// Issue is one validation finding. Line is 1-based and counts the header.
type Issue struct {
	Line  int
	Field string
	Code  Code
	Msg   string
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("line %d: %s: %s", i.Line, i.Code, i.Msg)
	}
	return fmt.Sprintf("line %d: %s: %s: %s", i.Line, i.Field, i.Code, i.Msg)
}

// CheckHeader verifies that the header names the 33 columns in file order.
func CheckHeader(header []string) []Issue {
	want := schema.Names()
	if len(header) != len(want) {
		return []Issue{{
			Line: 1,
			Code: CodeHeader,
			Msg:  fmt.Sprintf("header has %d columns, want %d", len(header), len(want)),
		}}
	}
	var issues []Issue
	for i, name := range header {
		if name != want[i] {
			issues = append(issues, Issue{
				Line:  1,
				Field: want[i],
				Code:  CodeHeader,
				Msg:   fmt.Sprintf("column %d is %q, want %q", i, name, want[i]),
			})
		}
	}
	return issues
}

// CheckEvent applies the domain and sentinel rules to one parsed event.
func CheckEvent(e event.Event, line int) []Issue {
	var issues []Issue

	vals := e.Values()
	fields := schema.Fields()
	for i, f := range fields {
		v := vals[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues = append(issues, Issue{Line: line, Field: f.Name, Code: CodeNotFinite,
				Msg: fmt.Sprintf("value %v", v)})
		}
	}

	if e.PriJetNum < 0 || e.PriJetNum > schema.MaxJetNum {
		issues = append(issues, Issue{Line: line, Field: "PRI_jet_num", Code: CodeJetNumDomain,
			Msg: fmt.Sprintf("value %d outside {0..%d}", e.PriJetNum, schema.MaxJetNum)})
		// Sentinel rules are keyed on the jet count; skip them when it is bogus.
		return issues
	}

	for i, f := range fields {
		if f.Group == schema.Meta {
			continue
		}
		defined := vals[i] != schema.Sentinel
		switch {
		case !f.DefinedFor(e.PriJetNum) && defined:
			issues = append(issues, Issue{Line: line, Field: f.Name, Code: CodeMustBeAbsent,
				Msg: fmt.Sprintf("value %v with %d jets, undefined below %d jets", vals[i], e.PriJetNum, f.MinJets)})
		case f.DefinedFor(e.PriJetNum) && !defined && !f.Optional:
			issues = append(issues, Issue{Line: line, Field: f.Name, Code: CodeMustBeDefined,
				Msg: fmt.Sprintf("sentinel with %d jets", e.PriJetNum)})
		}
	}

	if e.Label != schema.SignalLabel && e.Label != schema.BackgroundLabel {
		issues = append(issues, Issue{Line: line, Field: "Label", Code: CodeLabelDomain,
			Msg: fmt.Sprintf("value %d outside {0,1}", e.Label)})
	}
	if !(e.Weight > 0) || math.IsInf(e.Weight, 0) {
		issues = append(issues, Issue{Line: line, Field: "Weight", Code: CodeWeightDomain,
			Msg: fmt.Sprintf("value %v, want > 0", e.Weight)})
	}
	return issues
}

// CheckRow parses a raw record and applies CheckEvent. A row that does not
// parse yields only the parse issue.
func CheckRow(rec []string, line int) (event.Event, []Issue) {
	if len(rec) != schema.NumFields {
		return event.Event{}, []Issue{{Line: line, Code: CodeColumnCount,
			Msg: fmt.Sprintf("row has %d columns, want %d", len(rec), schema.NumFields)}}
	}
	e, err := event.ParseRow(rec)
	if err != nil {
		return event.Event{}, []Issue{{Line: line, Code: CodeParse, Msg: err.Error()}}
	}
	return e, CheckEvent(e, line)
}
