package descriptor

import "VirtualScreening/internal/chem"

type neighbour struct {
	idx  int
	atom chem.Atom
	bond chem.Bond
}

type want func(neighbour) bool

func neighboursOf(m *chem.Molecule, idx int, exclude ...int) []neighbour {
	bonds := m.BondsOf(idx)
	out := make([]neighbour, 0, len(bonds))
outer:
	for _, b := range bonds {
		other := b.Other(idx)
		for _, x := range exclude {
			if other == x {
				continue outer
			}
		}
		out = append(out, neighbour{idx: other, atom: m.Atoms[other], bond: b})
	}
	return out
}

// has reports whether each want can be satisfied by a distinct neighbour.
func has(nbs []neighbour, wants ...want) bool {
	used := make([]bool, len(nbs))
	var try func(k int) bool
	try = func(k int) bool {
		if k == len(wants) {
			return true
		}
		for i, nb := range nbs {
			if used[i] || !wants[k](nb) {
				continue
			}
			used[i] = true
			if try(k + 1) {
				return true
			}
			used[i] = false
		}
		return false
	}
	return try(0)
}

type atomTest func(chem.Atom) bool
type bondTest func(chem.Bond) bool

func via(b bondTest, a atomTest) want {
	return func(nb neighbour) bool {
		return b(nb.bond) && a(nb.atom)
	}
}

// Bond tests. An unqualified SMARTS bond means single or aromatic.
func anyBond(b chem.Bond) bool      { return b.Aromatic || b.Order == 1 }
func single(b chem.Bond) bool       { return !b.Aromatic && b.Order == 1 }
func aromaticBond(b chem.Bond) bool { return b.Aromatic }
func double(b chem.Bond) bool       { return !b.Aromatic && b.Order == 2 }
func triple(b chem.Bond) bool       { return !b.Aromatic && b.Order == 3 }

// Atom tests.
func heavy(a chem.Atom) bool     { return a.Number != 1 }
func aliphatic(a chem.Atom) bool { return heavy(a) && !a.Aromatic }
func aromatic(a chem.Atom) bool  { return a.Aromatic }
func carbon(a chem.Atom) bool    { return a.Symbol == "C" && !a.Aromatic }
func arCarbon(a chem.Atom) bool  { return a.Symbol == "C" && a.Aromatic }
func anyCarbon(a chem.Atom) bool { return a.Symbol == "C" }
func nonCarbon(a chem.Atom) bool { return heavy(a) && a.Symbol != "C" }

func element(symbols ...string) atomTest {
	return func(a chem.Atom) bool {
		for _, s := range symbols {
			if a.Symbol == s {
				return true
			}
		}
		return false
	}
}

func aliphaticElement(symbols ...string) atomTest {
	is := element(symbols...)
	return func(a chem.Atom) bool { return !a.Aromatic && is(a) }
}

// hetero is the SMARTS set [N,O,P,S,F,Cl,Br,I].
var hetero = aliphaticElement("N", "O", "P", "S", "F", "Cl", "Br", "I")

// unusual is [A;!C;!N;!O;!P;!S;!F;!Cl;!Br;!I;!#1].
func unusual(a chem.Atom) bool {
	return aliphatic(a) && !hetero(a) && a.Symbol != "C"
}

// unusualNoP is the aromatic-carbon variant that lets phosphorus through.
func unusualNoP(a chem.Atom) bool {
	return aliphatic(a) && a.Symbol != "C" && !aliphaticElement("N", "O", "S", "F", "Cl", "Br", "I")(a)
}
