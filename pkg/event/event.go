// Package event maps one row of the challenge dataset onto a typed record.
package event

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Ragansu/fair-universe/pkg/schema"
)

// Event is one collision record. Field order matches the file column order.
type Event struct {
	EventID                 int64   `csv:"EventId"`
	DerMassMMC              float64 `csv:"DER_mass_MMC"`
	DerMassTransverseMetLep float64 `csv:"DER_mass_transverse_met_lep"`
	DerMassVis              float64 `csv:"DER_mass_vis"`
	DerPtH                  float64 `csv:"DER_pt_h"`
	DerDeltaetaJetJet       float64 `csv:"DER_deltaeta_jet_jet"`
	DerMassJetJet           float64 `csv:"DER_mass_jet_jet"`
	DerProdetaJetJet        float64 `csv:"DER_prodeta_jet_jet"`
	DerDeltarTauLep         float64 `csv:"DER_deltar_tau_lep"`
	DerPtTot                float64 `csv:"DER_pt_tot"`
	DerSumPt                float64 `csv:"DER_sum_pt"`
	DerPtRatioLepTau        float64 `csv:"DER_pt_ratio_lep_tau"`
	DerMetPhiCentrality     float64 `csv:"DER_met_phi_centrality"`
	DerLepEtaCentrality     float64 `csv:"DER_lep_eta_centrality"`
	PriTauPt                float64 `csv:"PRI_tau_pt"`
	PriTauEta               float64 `csv:"PRI_tau_eta"`
	PriTauPhi               float64 `csv:"PRI_tau_phi"`
	PriLepPt                float64 `csv:"PRI_lep_pt"`
	PriLepEta               float64 `csv:"PRI_lep_eta"`
	PriLepPhi               float64 `csv:"PRI_lep_phi"`
	PriMet                  float64 `csv:"PRI_met"`
	PriMetPhi               float64 `csv:"PRI_met_phi"`
	PriMetSumet             float64 `csv:"PRI_met_sumet"`
	PriJetNum               int     `csv:"PRI_jet_num"`
	PriJetLeadingPt         float64 `csv:"PRI_jet_leading_pt"`
	PriJetLeadingEta        float64 `csv:"PRI_jet_leading_eta"`
	PriJetLeadingPhi        float64 `csv:"PRI_jet_leading_phi"`
	PriJetSubleadingPt      float64 `csv:"PRI_jet_subleading_pt"`
	PriJetSubleadingEta     float64 `csv:"PRI_jet_subleading_eta"`
	PriJetSubleadingPhi     float64 `csv:"PRI_jet_subleading_phi"`
	PriJetAllPt             float64 `csv:"PRI_jet_all_pt"`
	Weight                  float64 `csv:"Weight"`
	Label                   int     `csv:"Label"`
}

// NumFeatures is the length of the training-input vector.
const NumFeatures = schema.NumFields - 3

// ParseRow builds an Event from a raw record whose columns are in schema
// order. The record must have exactly schema.NumFields values.
func ParseRow(rec []string) (Event, error) {
	if len(rec) != schema.NumFields {
		return Event{}, fmt.Errorf("event: record has %d columns, want %d", len(rec), schema.NumFields)
	}
	vals := make([]float64, schema.NumFields)
	for i, f := range schema.Fields() {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return Event{}, fmt.Errorf("event: column %s: %w", f.Name, err)
		}
		if f.Kind == schema.Int && v != math.Trunc(v) {
			return Event{}, fmt.Errorf("event: column %s: %q is not an integer", f.Name, rec[i])
		}
		vals[i] = v
	}
	e := Event{
		EventID:                 int64(vals[0]),
		DerMassMMC:              vals[1],
		DerMassTransverseMetLep: vals[2],
		DerMassVis:              vals[3],
		DerPtH:                  vals[4],
		DerDeltaetaJetJet:       vals[5],
		DerMassJetJet:           vals[6],
		DerProdetaJetJet:        vals[7],
		DerDeltarTauLep:         vals[8],
		DerPtTot:                vals[9],
		DerSumPt:                vals[10],
		DerPtRatioLepTau:        vals[11],
		DerMetPhiCentrality:     vals[12],
		DerLepEtaCentrality:     vals[13],
		PriTauPt:                vals[14],
		PriTauEta:               vals[15],
		PriTauPhi:               vals[16],
		PriLepPt:                vals[17],
		PriLepEta:               vals[18],
		PriLepPhi:               vals[19],
		PriMet:                  vals[20],
		PriMetPhi:               vals[21],
		PriMetSumet:             vals[22],
		PriJetNum:               int(vals[23]),
		PriJetLeadingPt:         vals[24],
		PriJetLeadingEta:        vals[25],
		PriJetLeadingPhi:        vals[26],
		PriJetSubleadingPt:      vals[27],
		PriJetSubleadingEta:     vals[28],
		PriJetSubleadingPhi:     vals[29],
		PriJetAllPt:             vals[30],
		Weight:                  vals[31],
		Label:                   int(vals[32]),
	}
	return e, nil
}

// Values returns all 33 column values in file order, with the integer
// columns widened to float64.
func (e Event) Values() []float64 {
	return []float64{
		float64(e.EventID),
		e.DerMassMMC,
		e.DerMassTransverseMetLep,
		e.DerMassVis,
		e.DerPtH,
		e.DerDeltaetaJetJet,
		e.DerMassJetJet,
		e.DerProdetaJetJet,
		e.DerDeltarTauLep,
		e.DerPtTot,
		e.DerSumPt,
		e.DerPtRatioLepTau,
		e.DerMetPhiCentrality,
		e.DerLepEtaCentrality,
		e.PriTauPt,
		e.PriTauEta,
		e.PriTauPhi,
		e.PriLepPt,
		e.PriLepEta,
		e.PriLepPhi,
		e.PriMet,
		e.PriMetPhi,
		e.PriMetSumet,
		float64(e.PriJetNum),
		e.PriJetLeadingPt,
		e.PriJetLeadingEta,
		e.PriJetLeadingPhi,
		e.PriJetSubleadingPt,
		e.PriJetSubleadingEta,
		e.PriJetSubleadingPhi,
		e.PriJetAllPt,
		e.Weight,
		float64(e.Label),
	}
}

// Features returns the 30 training-input values in file order. EventId,
// Weight and Label are excluded.
func (e Event) Features() []float64 {
	all := e.Values()
	out := make([]float64, 0, NumFeatures)
	for i, f := range schema.Fields() {
		if f.Group != schema.Meta {
			out = append(out, all[i])
		}
	}
	return out
}

// IsDefined reports whether the named column carries a real value for this
// event, i.e. is not the undefined sentinel.
func (e Event) IsDefined(name string) bool {
	i := schema.Index(name)
	if i < 0 {
		return false
	}
	return e.Values()[i] != schema.Sentinel
}

// IsSignal reports whether the event is labelled as the signal process.
func (e Event) IsSignal() bool { return e.Label == schema.SignalLabel }

// Finite reports whether every column holds a finite value.
func (e Event) Finite() bool {
	for _, v := range e.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
