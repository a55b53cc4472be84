package chem

// Atom is a heavy atom (or a lone explicit hydrogen) of a parsed molecule.
type Atom struct {
	Symbol    string
	Number    int
	Charge    int
	Hydrogens int
	Aromatic  bool
	bracket   bool
}

// Bond connects two atoms. Order keeps the Kekulé multiplicity (1..3);
// Aromatic is set when the bond was written aromatic or lies in a perceived aromatic ring.
type Bond struct {
	From     int
	To       int
	Order    int
	Aromatic bool
	written  bool
}

// Other returns the atom on the opposite end of the bond.
func (b Bond) Other(atom int) int {
	if b.From == atom {
		return b.To
	}
	return b.From
}

// Molecule is an undirected graph of atoms and bonds with hydrogens folded into atom counts.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond
	adj   [][]int
}

func (m *Molecule) addAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.Atoms) - 1
}

func (m *Molecule) addBond(from, to, order int, aromatic bool) {
	m.Bonds = append(m.Bonds, Bond{From: from, To: to, Order: order, Aromatic: aromatic, written: aromatic})
	idx := len(m.Bonds) - 1
	m.adj[from] = append(m.adj[from], idx)
	m.adj[to] = append(m.adj[to], idx)
}

func (m *Molecule) reindex() {
	m.adj = make([][]int, len(m.Atoms))
	for i, b := range m.Bonds {
		m.adj[b.From] = append(m.adj[b.From], i)
		m.adj[b.To] = append(m.adj[b.To], i)
	}
}

// BondsOf returns the bonds incident to an atom.
func (m *Molecule) BondsOf(atom int) []Bond {
	out := make([]Bond, 0, len(m.adj[atom]))
	for _, idx := range m.adj[atom] {
		out = append(out, m.Bonds[idx])
	}
	return out
}

// Degree is the number of explicit (heavy) neighbours.
func (m *Molecule) Degree(atom int) int {
	return len(m.adj[atom])
}

// Connectivity is the SMARTS X value: explicit neighbours plus hydrogens.
func (m *Molecule) Connectivity(atom int) int {
	return len(m.adj[atom]) + m.Atoms[atom].Hydrogens
}

// BondBetween looks up the bond joining two atoms.
func (m *Molecule) BondBetween(a, b int) (Bond, bool) {
	for _, idx := range m.adj[a] {
		if m.Bonds[idx].Other(a) == b {
			return m.Bonds[idx], true
		}
	}
	return Bond{}, false
}

func (m *Molecule) valenceUsed(atom int) int {
	sum := 0
	for _, idx := range m.adj[atom] {
		sum += m.Bonds[idx].Order
	}
	return sum
}

// HeavyAtomCount counts atoms other than hydrogen.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for _, a := range m.Atoms {
		if a.Number != 1 {
			n++
		}
	}
	return n
}
