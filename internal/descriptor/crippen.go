package descriptor

import "VirtualScreening/internal/chem"

// Wildman–Crippen atomic contributions to LogP (J. Chem. Inf. Comput. Sci. 1999, 39, 868).
var contributions = map[string]float64{
	"C1": 0.1441, "C2": 0.0000, "C3": -0.2035, "C4": -0.2051, "C5": -0.2783,
	"C6": 0.1551, "C7": 0.0017, "C8": 0.08452, "C9": -0.1444, "C10": -0.0516,
	"C11": 0.1193, "C12": -0.0967, "C13": -0.5443, "C14": 0.0000, "C15": 0.2450,
	"C16": 0.1980, "C17": 0.0000, "C18": 0.1581, "C19": 0.2955, "C20": 0.2713,
	"C21": 0.1360, "C22": 0.4619, "C23": 0.5437, "C24": 0.1893, "C25": -0.8186,
	"C26": 0.2640, "C27": 0.2148, "CS": 0.08129,

	"H1": 0.1230, "H2": -0.2677, "H3": 0.2142, "H4": 0.2980, "HS": 0.1125,

	"N1": -1.0190, "N2": -0.7096, "N3": -1.0270, "N4": -0.5188, "N5": 0.08387,
	"N6": 0.1836, "N7": -0.3187, "N8": -0.4458, "N9": 0.01508, "N10": -1.9500,
	"N11": -0.3239, "N12": -1.1190, "N13": -0.3396, "N14": 0.2887, "NS": -0.4806,

	"O1": 0.1552, "O2": -0.2893, "O3": -0.0684, "O4": -0.4195, "O5": 0.0335,
	"O6": -0.3339, "O7": -1.1890, "O8": 0.1788, "O9": -0.1526, "O10": 0.1129,
	"O11": 0.4833, "O12": -1.3260, "OS": -0.1188,

	"F": 0.4202, "Cl": 0.6895, "Br": 0.8456, "I": 0.8857, "Hal": -2.9960,
	"P": 0.8612, "S1": 0.6482, "S2": -0.0024, "S3": 0.6237,
	"Me1": -0.3808, "Me2": -0.0025,
}

// AtomType is the Crippen class assigned to one heavy atom.
type AtomType struct {
	Atom      int
	Symbol    string
	Class     string
	Hydrogens string
}

// Classify assigns a Crippen class to every atom and to the hydrogens it carries.
func Classify(m *chem.Molecule) []AtomType {
	out := make([]AtomType, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = AtomType{
			Atom:      i,
			Symbol:    a.Symbol,
			Class:     classifyAtom(m, i),
			Hydrogens: classifyHydrogen(m, i),
		}
	}
	return out
}

// LogP sums atomic and hydrogen contributions for a parsed molecule.
func LogP(m *chem.Molecule) float64 {
	total := 0.0
	for _, t := range Classify(m) {
		total += contributions[t.Class]
		if h := m.Atoms[t.Atom].Hydrogens; h > 0 {
			total += float64(h) * contributions[t.Hydrogens]
		}
	}
	return total
}

func classifyAtom(m *chem.Molecule, i int) string {
	a := m.Atoms[i]
	switch a.Symbol {
	case "C":
		if a.Aromatic {
			return aromaticCarbon(m, i)
		}
		return aliphaticCarbon(m, i)
	case "N":
		return nitrogen(m, i)
	case "O":
		return oxygen(m, i)
	case "S":
		switch {
		case a.Aromatic:
			return "S3"
		case a.Charge != 0:
			return "S2"
		default:
			return "S1"
		}
	case "P":
		return "P"
	case "F", "Cl", "Br", "I":
		if a.Charge != 0 {
			return "Hal"
		}
		return a.Symbol
	case "H":
		return "H1"
	case "Li", "Na", "K", "Rb", "Cs":
		return "Me1"
	default:
		return "Me2"
	}
}

func aliphaticCarbon(m *chem.Molecule, i int) string {
	h := m.Atoms[i].Hydrogens
	x := m.Connectivity(i)
	nbs := neighboursOf(m, i)

	C := via(anyBond, carbon)
	A := via(anyBond, aliphatic)
	Het := via(anyBond, hetero)
	ar := via(anyBond, aromatic)
	c := via(anyBond, arCarbon)
	dC := via(double, carbon)

	switch {
	case h == 4 && len(nbs) == 0,
		h == 3 && has(nbs, C),
		h == 2 && has(nbs, C, C):
		return "C1"
	case h == 1 && has(nbs, C, C, C),
		h == 0 && has(nbs, C, C, C, C):
		return "C2"
	case h == 3 && has(nbs, Het),
		h == 2 && x == 4 && has(nbs, Het, A):
		return "C3"
	case h == 1 && x == 4 && has(nbs, Het, A, A),
		h == 0 && x == 4 && has(nbs, Het, A, A, A):
		return "C4"
	case has(nbs, via(double, func(a chem.Atom) bool { return aliphatic(a) && a.Symbol != "C" })):
		return "C5"
	case h == 2 && has(nbs, dC),
		h == 1 && has(nbs, dC, A),
		h == 0 && has(nbs, dC, A, A),
		has(nbs, dC, dC):
		return "C6"
	case x == 2 && has(nbs, via(triple, aliphatic)):
		return "C7"
	case h == 3 && has(nbs, c):
		return "C8"
	case h == 3 && has(nbs, ar):
		return "C9"
	case h == 2 && x == 4 && has(nbs, ar):
		return "C10"
	case h == 1 && x == 4 && has(nbs, ar):
		return "C11"
	case h == 0 && x == 4 && has(nbs, ar):
		return "C12"
	case has(nbs, dC, ar, A),
		has(nbs, dC, c, ar),
		h == 1 && has(nbs, dC, ar),
		has(nbs, via(double, arCarbon)):
		return "C26"
	case x == 4 && has(nbs, via(anyBond, unusual)):
		return "C27"
	default:
		return "CS"
	}
}

func aromaticCarbon(m *chem.Molecule, i int) string {
	h := m.Atoms[i].Hydrogens
	nbs := neighboursOf(m, i)
	ring := via(aromaticBond, aromatic)

	switch {
	case h == 0 && has(nbs, via(single, unusualNoP)):
		return "C13"
	case has(nbs, via(anyBond, element("F"))):
		return "C14"
	case has(nbs, via(anyBond, element("Cl"))):
		return "C15"
	case has(nbs, via(anyBond, element("Br"))):
		return "C16"
	case has(nbs, via(anyBond, element("I"))):
		return "C17"
	case h == 1:
		return "C18"
	case has(nbs, ring, ring, ring):
		return "C19"
	case has(nbs, ring, ring, via(single, aromatic)):
		return "C20"
	case has(nbs, ring, ring, via(single, carbon)):
		return "C21"
	case has(nbs, ring, ring, via(single, aliphaticElement("N"))):
		return "C22"
	case has(nbs, ring, ring, via(single, aliphaticElement("O"))):
		return "C23"
	case has(nbs, ring, ring, via(single, aliphaticElement("S"))):
		return "C24"
	case has(nbs, ring, ring, via(double, aliphaticElement("C", "N", "O"))):
		return "C25"
	default:
		return "CS"
	}
}

func nitrogen(m *chem.Molecule, i int) string {
	a := m.Atoms[i]
	h := a.Hydrogens
	nbs := neighboursOf(m, i)

	if a.Aromatic {
		if a.Charge > 0 {
			return "N12"
		}
		return "N11"
	}

	A := via(anyBond, aliphatic)
	ar := via(anyBond, aromatic)
	hv := via(anyBond, heavy)

	if a.Charge == 0 {
		switch {
		case h == 2 && has(nbs, A):
			return "N1"
		case h == 1 && has(nbs, A, A):
			return "N2"
		case h == 2 && has(nbs, ar):
			return "N3"
		case h == 1 && has(nbs, ar, hv):
			return "N4"
		case h == 1 && has(nbs, via(double, heavy)):
			return "N5"
		case h == 0 && has(nbs, via(double, heavy), hv):
			return "N6"
		case h == 0 && has(nbs, A, A, A):
			return "N7"
		case h == 0 && (has(nbs, ar, hv, A) || has(nbs, ar, ar, ar)):
			return "N8"
		case has(nbs, via(triple, aliphatic)):
			return "N9"
		default:
			return "NS"
		}
	}

	if a.Charge > 0 {
		switch {
		case h >= 1 && h <= 3:
			return "N10"
		case h == 0 && has(nbs, A, A, A, A),
			h == 0 && has(nbs, via(double, aliphatic), A, hv),
			h == 0 && has(nbs, via(double, anyCarbon), via(double, element("N"))):
			return "N13"
		case has(nbs, via(triple, aliphatic)),
			has(nbs, via(double, func(x chem.Atom) bool { return x.Symbol == "N" && x.Charge < 0 })):
			return "N14"
		default:
			return "NS"
		}
	}
	return "N14"
}

func oxygen(m *chem.Molecule, i int) string {
	a := m.Atoms[i]
	h := a.Hydrogens
	nbs := neighboursOf(m, i)

	if a.Aromatic {
		return "O1"
	}

	A := via(anyBond, aliphatic)
	ar := via(anyBond, aromatic)

	switch {
	case h == 1 || h == 2:
		return "O2"
	case h == 0 && len(nbs) == 2 && has(nbs, A, A):
		return "O3"
	case h == 0 && len(nbs) == 2 && (has(nbs, ar, A) || has(nbs, ar, ar)):
		return "O4"
	case has(nbs, via(double, element("N", "O"))),
		a.Charge < 0 && m.Connectivity(i) == 1 && has(nbs, via(anyBond, element("N"))):
		return "O5"
	case a.Charge < 0 && m.Connectivity(i) == 1 && has(nbs, via(anyBond, element("S"))):
		return "O6"
	case a.Charge < 0 && carboxylate(m, i, nbs):
		return "O12"
	case a.Charge < 0 && m.Connectivity(i) == 1:
		return "O7"
	case has(nbs, via(double, arCarbon)):
		return "O8"
	}

	for _, nb := range nbs {
		if !double(nb.bond) || !carbon(nb.atom) {
			continue
		}
		return carbonylOxygen(m, i, nb.idx)
	}
	return "OS"
}

func carboxylate(m *chem.Molecule, i int, nbs []neighbour) bool {
	for _, nb := range nbs {
		if !carbon(nb.atom) || !anyBond(nb.bond) {
			continue
		}
		if has(neighboursOf(m, nb.idx, i), via(double, element("O"))) {
			return true
		}
	}
	return false
}

// carbonylOxygen classifies O=C by the carbonyl carbon's other substituents.
func carbonylOxygen(m *chem.Molecule, o, k int) string {
	kh := m.Atoms[k].Hydrogens
	rest := neighboursOf(m, k, o)

	C := via(anyBond, carbon)
	c := via(anyBond, arCarbon)
	A := via(anyBond, aliphatic)

	switch {
	case kh == 1 && has(rest, C),
		has(rest, C, A),
		kh == 1 && has(rest, via(anyBond, aliphaticElement("N"))),
		kh == 1 && has(rest, via(anyBond, aliphaticElement("O"))),
		kh == 2,
		m.Connectivity(k) == 2 && has(rest, via(double, element("O"))):
		return "O9"
	case kh == 1 && has(rest, c),
		has(rest, via(anyBond, anyCarbon), via(anyBond, aromatic)),
		has(rest, c, A):
		return "O10"
	case has(rest, via(anyBond, nonCarbon), via(anyBond, nonCarbon)):
		return "O11"
	default:
		return "OS"
	}
}

func classifyHydrogen(m *chem.Molecule, i int) string {
	a := m.Atoms[i]
	switch a.Symbol {
	case "C", "H":
		return "H1"
	case "N":
		return "H3"
	case "O":
		return hydroxylHydrogen(m, i)
	default:
		return "H2"
	}
}

func hydroxylHydrogen(m *chem.Molecule, o int) string {
	nbs := neighboursOf(m, o)
	if len(nbs) == 0 {
		return "H2"
	}

	for _, nb := range nbs {
		switch {
		case carbon(nb.atom) && m.Connectivity(nb.idx) == 4:
			return "H2"
		case arCarbon(nb.atom):
			return "H2"
		case !element("C", "N", "O", "S")(nb.atom):
			return "H2"
		}
	}
	for _, nb := range nbs {
		if nb.atom.Symbol == "N" {
			return "H3"
		}
	}
	for _, nb := range nbs {
		switch {
		case nb.atom.Symbol == "O" || nb.atom.Symbol == "S":
			return "H4"
		case carbon(nb.atom) && has(neighboursOf(m, nb.idx, o), via(double, element("C", "N", "O", "S"))):
			return "H4"
		}
	}
	return "HS"
}
