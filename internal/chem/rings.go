package chem

import "sort"

const (
	minAromaticRing = 5
	maxAromaticRing = 7
)

// Cycles enumerates simple cycles up to maxSize atoms. Each cycle is listed
// once, starting at its lowest atom index.
func (m *Molecule) Cycles(maxSize int) [][]int {
	var cycles [][]int
	path := make([]int, 0, maxSize)
	onPath := make([]bool, len(m.Atoms))

	var walk func(start, current int)
	walk = func(start, current int) {
		for _, idx := range m.adj[current] {
			next := m.Bonds[idx].Other(current)
			if next == start && len(path) >= 3 && path[1] < path[len(path)-1] {
				cycle := make([]int, len(path))
				copy(cycle, path)
				cycles = append(cycles, cycle)
				continue
			}
			if next <= start || onPath[next] || len(path) >= maxSize {
				continue
			}
			path = append(path, next)
			onPath[next] = true
			walk(start, next)
			onPath[next] = false
			path = path[:len(path)-1]
		}
	}

	for start := range m.Atoms {
		path = append(path[:0], start)
		onPath[start] = true
		walk(start, start)
		onPath[start] = false
	}

	sort.SliceStable(cycles, func(i, j int) bool { return len(cycles[i]) < len(cycles[j]) })
	return cycles
}

// InRing reports whether the atom belongs to any cycle of at most maxSize atoms.
func (m *Molecule) InRing(atom, maxSize int) bool {
	for _, c := range m.Cycles(maxSize) {
		for _, a := range c {
			if a == atom {
				return true
			}
		}
	}
	return false
}

// perceiveAromaticity marks rings whose pi electron count satisfies 4n+2.
// Fused systems are handled by repeating until no further ring flips, with a
// double bond into a neighbouring ring counted as one electron.
func (m *Molecule) perceiveAromaticity() {
	cycles := m.Cycles(maxAromaticRing)
	ringAtom := make([]bool, len(m.Atoms))
	for _, c := range cycles {
		for _, a := range c {
			ringAtom[a] = true
		}
	}

	done := make([]bool, len(cycles))
	for changed := true; changed; {
		changed = false
		for i, c := range cycles {
			if done[i] || len(c) < minAromaticRing {
				continue
			}
			if m.allAromatic(c) {
				done[i] = true
				continue
			}
			electrons, ok := m.piElectrons(c, ringAtom)
			if !ok || electrons < 2 || (electrons-2)%4 != 0 {
				continue
			}
			m.markAromatic(c)
			done[i] = true
			changed = true
		}
	}
}

func (m *Molecule) allAromatic(cycle []int) bool {
	for i, a := range cycle {
		if !m.Atoms[a].Aromatic {
			return false
		}
		b, ok := m.BondBetween(a, cycle[(i+1)%len(cycle)])
		if !ok || !b.Aromatic {
			return false
		}
	}
	return true
}

func (m *Molecule) markAromatic(cycle []int) {
	inCycle := make(map[int]bool, len(cycle))
	for _, a := range cycle {
		inCycle[a] = true
		m.Atoms[a].Aromatic = true
	}
	for i := range m.Bonds {
		b := &m.Bonds[i]
		if inCycle[b.From] && inCycle[b.To] && m.adjacentInCycle(cycle, b.From, b.To) {
			b.Aromatic = true
		}
	}
}

func (m *Molecule) adjacentInCycle(cycle []int, a, b int) bool {
	n := len(cycle)
	for i := range cycle {
		x, y := cycle[i], cycle[(i+1)%n]
		if (x == a && y == b) || (x == b && y == a) {
			return true
		}
	}
	return false
}

func (m *Molecule) piElectrons(cycle []int, ringAtom []bool) (int, bool) {
	inCycle := make(map[int]bool, len(cycle))
	for _, a := range cycle {
		inCycle[a] = true
	}

	total := 0
	for _, idx := range cycle {
		e, ok := m.atomPiElectrons(idx, inCycle, ringAtom)
		if !ok {
			return 0, false
		}
		total += e
	}
	return total, true
}

func (m *Molecule) atomPiElectrons(idx int, inCycle map[int]bool, ringAtom []bool) (int, bool) {
	atom := m.Atoms[idx]
	switch atom.Symbol {
	case "C", "N", "O", "S", "P", "B", "Se", "As":
	default:
		return 0, false
	}

	// Atoms written aromatic carry no Kekulé information.
	if atom.Aromatic && m.lacksKekule(idx) {
		switch atom.Symbol {
		case "C":
			if atom.Charge < 0 {
				return 2, true
			}
			return 1, true
		case "N", "P":
			if atom.Hydrogens > 0 || m.Degree(idx) == 3 {
				return 2, true
			}
			return 1, true
		case "B":
			return 0, true
		default:
			return 2, true
		}
	}

	doubles := 0
	contribution := 0
	for _, b := range m.BondsOf(idx) {
		other := b.Other(idx)
		switch {
		case b.Order == 3:
			return 0, false
		case b.Order == 2:
			doubles++
			switch {
			case inCycle[other]:
				contribution = 1
			case ringAtom[other]:
				contribution = 1
			case atom.Symbol == "C" && isExocyclicAcceptor(m.Atoms[other].Symbol):
				contribution = 0
			default:
				return 0, false
			}
		}
	}
	if doubles > 1 {
		return 0, false
	}
	if doubles == 1 {
		return contribution, true
	}

	switch atom.Symbol {
	case "C":
		switch {
		case atom.Charge < 0:
			return 2, true
		case atom.Charge > 0:
			return 0, true
		default:
			return 0, false
		}
	case "N", "P":
		if atom.Charge == 0 && m.Connectivity(idx) == 3 {
			return 2, true
		}
		return 0, false
	case "O", "S", "Se":
		if atom.Charge == 0 && m.Connectivity(idx) == 2 {
			return 2, true
		}
		return 0, false
	case "B":
		if m.Connectivity(idx) == 3 {
			return 0, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (m *Molecule) lacksKekule(idx int) bool {
	for _, b := range m.BondsOf(idx) {
		if b.written {
			return true
		}
	}
	return false
}

func isExocyclicAcceptor(symbol string) bool {
	switch symbol {
	case "O", "N", "S":
		return true
	}
	return false
}
