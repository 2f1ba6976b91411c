package validate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragansu/fair-universe/pkg/event"
	"github.com/Ragansu/fair-universe/pkg/schema"
)

// testEvent builds an event that satisfies every rule at the given jet
// multiplicity.
func testEvent(t *testing.T, jets int) event.Event {
	t.Helper()
	rec := make([]string, schema.NumFields)
	for i, f := range schema.Fields() {
		if f.MinJets > jets {
			rec[i] = "-999.0"
		} else {
			rec[i] = "1.5"
		}
	}
	rec[schema.Index("EventId")] = "100000"
	rec[schema.Index("PRI_jet_num")] = strconv.Itoa(jets)
	rec[schema.Index("Weight")] = "0.0018"
	rec[schema.Index("Label")] = "0"
	e, err := event.ParseRow(rec)
	require.NoError(t, err)
	return e
}

func codes(issues []Issue) []Code {
	out := make([]Code, len(issues))
	for i, is := range issues {
		out[i] = is.Code
	}
	return out
}

func TestCheckHeader(t *testing.T) {
	assert.Empty(t, CheckHeader(schema.Names()))

	short := schema.Names()[:10]
	issues := CheckHeader(short)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeHeader, issues[0].Code)

	swapped := schema.Names()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	issues = CheckHeader(swapped)
	assert.Len(t, issues, 2)
}

func TestCheckEventValid(t *testing.T) {
	for jets := 0; jets <= schema.MaxJetNum; jets++ {
		assert.Empty(t, CheckEvent(testEvent(t, jets), 2), "jets=%d", jets)
	}
}

func TestCheckEventSentinelRules(t *testing.T) {
	t.Run("value where sentinel required", func(t *testing.T) {
		e := testEvent(t, 0)
		e.PriJetLeadingPt = 55.2
		issues := CheckEvent(e, 2)
		require.Len(t, issues, 1)
		assert.Equal(t, CodeMustBeAbsent, issues[0].Code)
		assert.Equal(t, "PRI_jet_leading_pt", issues[0].Field)
	})

	t.Run("sentinel where value required", func(t *testing.T) {
		e := testEvent(t, 3)
		e.DerMassVis = schema.Sentinel
		issues := CheckEvent(e, 2)
		require.Len(t, issues, 1)
		assert.Equal(t, CodeMustBeDefined, issues[0].Code)
		assert.Equal(t, "DER_mass_vis", issues[0].Field)
	})

	t.Run("mass MMC may be undefined at any multiplicity", func(t *testing.T) {
		e := testEvent(t, 3)
		e.DerMassMMC = schema.Sentinel
		assert.Empty(t, CheckEvent(e, 2))
	})

	t.Run("subleading jet defined only from two jets", func(t *testing.T) {
		e := testEvent(t, 1)
		assert.Empty(t, CheckEvent(e, 2))
		e.PriJetSubleadingPt = 31.0
		issues := CheckEvent(e, 2)
		require.Len(t, issues, 1)
		assert.Equal(t, "PRI_jet_subleading_pt", issues[0].Field)
	})
}

func TestCheckEventDomains(t *testing.T) {
	t.Run("jet num", func(t *testing.T) {
		e := testEvent(t, 2)
		e.PriJetNum = 7
		issues := CheckEvent(e, 2)
		require.Len(t, issues, 1)
		assert.Equal(t, CodeJetNumDomain, issues[0].Code)
	})

	t.Run("label", func(t *testing.T) {
		e := testEvent(t, 2)
		e.Label = 2
		assert.Contains(t, codes(CheckEvent(e, 2)), CodeLabelDomain)
	})

	t.Run("weight", func(t *testing.T) {
		e := testEvent(t, 2)
		e.Weight = 0
		assert.Contains(t, codes(CheckEvent(e, 2)), CodeWeightDomain)
		e.Weight = -1
		assert.Contains(t, codes(CheckEvent(e, 2)), CodeWeightDomain)
	})
}

func TestCheckRow(t *testing.T) {
	_, issues := CheckRow([]string{"1", "2", "3"}, 5)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeColumnCount, issues[0].Code)
	assert.Equal(t, 5, issues[0].Line)

	rec := make([]string, schema.NumFields)
	for i := range rec {
		rec[i] = "bogus"
	}
	_, issues = CheckRow(rec, 6)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeParse, issues[0].Code)
}
