// Package schema describes the structure of the HEP challenge dataset: the 33
// columns of an event record, their kinds, their grouping into primitive and
// derived quantities, and the conditions under which a value is undefined.
package schema

// Kind is the scalar type of a column.
type Kind int

const (
	Int Kind = iota
	Float
)

func (k Kind) String() string {
	if k == Int {
		return "int"
	}
	return "float"
}

// Group classifies a column by origin.
type Group int

const (
	// Meta columns (EventId, Weight, Label) are never training inputs.
	Meta Group = iota
	// Primitive quantities measured directly by the detector (PRI_*).
	Primitive
	// Derived quantities computed from primitives (DER_*).
	Derived
)

func (g Group) String() string {
	switch g {
	case Primitive:
		return "PRI"
	case Derived:
		return "DER"
	default:
		return "meta"
	}
}

const (
	// Sentinel marks a value as undefined for the event topology.
	Sentinel = -999.0

	// SignalLabel and BackgroundLabel are the two classes of the Label column.
	SignalLabel     = 1
	BackgroundLabel = 0

	// MaxJetNum is the largest value PRI_jet_num takes; larger multiplicities
	// are capped at it upstream.
	MaxJetNum = 3
)

// Field describes one column of an event record.
type Field struct {
	Name  string
	Kind  Kind
	Group Group
	// MinJets is the smallest PRI_jet_num for which the value is defined.
	// Zero means the value is always defined.
	MinJets int
	// Optional marks a field that may carry the sentinel at any jet
	// multiplicity (DER_mass_MMC, when the mass estimator does not converge).
	Optional bool
	Doc      string
}

// fields lists the 33 columns in file order.
var fields = []Field{
	{Name: "EventId", Kind: Int, Group: Meta, Doc: "unique event identifier, not a physics quantity"},
	{Name: "DER_mass_MMC", Kind: Float, Group: Derived, Optional: true, Doc: "estimated mass of the Higgs candidate; undefined when the topology is too inconsistent"},
	{Name: "DER_mass_transverse_met_lep", Kind: Float, Group: Derived, Doc: "transverse mass of the missing energy and the lepton"},
	{Name: "DER_mass_vis", Kind: Float, Group: Derived, Doc: "invariant mass of the hadronic tau and the lepton"},
	{Name: "DER_pt_h", Kind: Float, Group: Derived, Doc: "transverse momentum of the hadronic tau, lepton and missing energy vector sum"},
	{Name: "DER_deltaeta_jet_jet", Kind: Float, Group: Derived, MinJets: 2, Doc: "pseudorapidity separation of the two jets"},
	{Name: "DER_mass_jet_jet", Kind: Float, Group: Derived, MinJets: 2, Doc: "invariant mass of the two jets"},
	{Name: "DER_prodeta_jet_jet", Kind: Float, Group: Derived, MinJets: 2, Doc: "product of the pseudorapidities of the two jets"},
	{Name: "DER_deltar_tau_lep", Kind: Float, Group: Derived, Doc: "R separation of the hadronic tau and the lepton"},
	{Name: "DER_pt_tot", Kind: Float, Group: Derived, Doc: "transverse momentum of the full visible and missing vector sum"},
	{Name: "DER_sum_pt", Kind: Float, Group: Derived, Doc: "scalar sum of the transverse momenta of tau, lepton and jets"},
	{Name: "DER_pt_ratio_lep_tau", Kind: Float, Group: Derived, Doc: "ratio of the lepton and hadronic tau transverse momenta"},
	{Name: "DER_met_phi_centrality", Kind: Float, Group: Derived, Doc: "centrality of the missing energy azimuth relative to tau and lepton"},
	{Name: "DER_lep_eta_centrality", Kind: Float, Group: Derived, MinJets: 2, Doc: "centrality of the lepton pseudorapidity relative to the two jets"},
	{Name: "PRI_tau_pt", Kind: Float, Group: Primitive, Doc: "transverse momentum of the hadronic tau"},
	{Name: "PRI_tau_eta", Kind: Float, Group: Primitive, Doc: "pseudorapidity of the hadronic tau"},
	{Name: "PRI_tau_phi", Kind: Float, Group: Primitive, Doc: "azimuth angle of the hadronic tau"},
	{Name: "PRI_lep_pt", Kind: Float, Group: Primitive, Doc: "transverse momentum of the lepton"},
	{Name: "PRI_lep_eta", Kind: Float, Group: Primitive, Doc: "pseudorapidity of the lepton"},
	{Name: "PRI_lep_phi", Kind: Float, Group: Primitive, Doc: "azimuth angle of the lepton"},
	{Name: "PRI_met", Kind: Float, Group: Primitive, Doc: "missing transverse energy"},
	{Name: "PRI_met_phi", Kind: Float, Group: Primitive, Doc: "azimuth angle of the missing transverse energy"},
	{Name: "PRI_met_sumet", Kind: Float, Group: Primitive, Doc: "total transverse energy in the detector"},
	{Name: "PRI_jet_num", Kind: Int, Group: Primitive, Doc: "number of jets, capped at 3"},
	{Name: "PRI_jet_leading_pt", Kind: Float, Group: Primitive, MinJets: 1, Doc: "transverse momentum of the leading jet"},
	{Name: "PRI_jet_leading_eta", Kind: Float, Group: Primitive, MinJets: 1, Doc: "pseudorapidity of the leading jet"},
	{Name: "PRI_jet_leading_phi", Kind: Float, Group: Primitive, MinJets: 1, Doc: "azimuth angle of the leading jet"},
	{Name: "PRI_jet_subleading_pt", Kind: Float, Group: Primitive, MinJets: 2, Doc: "transverse momentum of the subleading jet"},
	{Name: "PRI_jet_subleading_eta", Kind: Float, Group: Primitive, MinJets: 2, Doc: "pseudorapidity of the subleading jet"},
	{Name: "PRI_jet_subleading_phi", Kind: Float, Group: Primitive, MinJets: 2, Doc: "azimuth angle of the subleading jet"},
	{Name: "PRI_jet_all_pt", Kind: Float, Group: Primitive, Doc: "scalar sum of the transverse momenta of all jets"},
	{Name: "Weight", Kind: Float, Group: Meta, Doc: "statistical event weight, excluded from training input"},
	{Name: "Label", Kind: Int, Group: Meta, Doc: "event class: 1 signal, 0 background"},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Name] = i
	}
	return m
}()

// Fields returns the 33 columns in file order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// NumFields is the number of columns in an event record.
const NumFields = 33

// Lookup returns the field with the given name.
func Lookup(name string) (Field, bool) {
	i, ok := byName[name]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// Index returns the file-order position of the named column, or -1.
func Index(name string) int {
	i, ok := byName[name]
	if !ok {
		return -1
	}
	return i
}

// Names returns all column names in file order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// FeatureNames returns the names of the training-input columns in file order.
// EventId, Weight and Label are excluded.
func FeatureNames() []string {
	var out []string
	for _, f := range fields {
		if f.Group != Meta {
			out = append(out, f.Name)
		}
	}
	return out
}

// DefinedFor reports whether the field carries a real value at the given jet
// multiplicity. Optional fields may still hold the sentinel even when this
// returns true.
func (f Field) DefinedFor(jetNum int) bool {
	return jetNum >= f.MinJets
}
