package chem

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("empty smiles")

// SyntaxError reports the position where parsing stopped.
type SyntaxError struct {
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smiles: %s at offset %d", e.Reason, e.Pos)
}

type ringOpening struct {
	atom  int
	order int
}

type parser struct {
	src     string
	pos     int
	mol     *Molecule
	prev    int
	pending int
	branch  []int
	rings   map[int]ringOpening
}

// ParseSMILES builds a molecule from a SMILES string, assigns implicit
// hydrogens, folds explicit hydrogens and perceives aromaticity.
func ParseSMILES(smiles string) (*Molecule, error) {
	if smiles == "" {
		return nil, ErrEmpty
	}
	p := &parser{
		src:   smiles,
		mol:   &Molecule{},
		prev:  -1,
		rings: map[int]ringOpening{},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}

	mol := p.mol
	mol.assignImplicitHydrogens()
	mol.foldHydrogens()
	mol.perceiveAromaticity()
	return mol, nil
}

func (p *parser) fail(reason string) error {
	return &SyntaxError{Pos: p.pos, Reason: reason}
}

func (p *parser) parse() error {
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch {
		case ch == '(':
			if p.prev < 0 {
				return p.fail("branch without preceding atom")
			}
			p.branch = append(p.branch, p.prev)
			p.pos++
		case ch == ')':
			if len(p.branch) == 0 {
				return p.fail("unbalanced ')'")
			}
			if p.pending != 0 {
				return p.fail("bond before ')'")
			}
			p.prev = p.branch[len(p.branch)-1]
			p.branch = p.branch[:len(p.branch)-1]
			p.pos++
		case ch == '.':
			if p.pending != 0 {
				return p.fail("bond before '.'")
			}
			p.prev = -1
			p.pos++
		case ch == '-' || ch == '/' || ch == '\\':
			p.setBond(1)
		case ch == '=':
			p.setBond(2)
		case ch == '#':
			p.setBond(3)
		case ch == '$':
			p.setBond(4)
		case ch == ':':
			p.setBond(-1)
		case ch == '%' || unicode.IsDigit(rune(ch)):
			if err := p.ringClosure(); err != nil {
				return err
			}
		case ch == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}

	switch {
	case len(p.branch) > 0:
		return p.fail("unclosed branch")
	case len(p.rings) > 0:
		return p.fail("unclosed ring")
	case p.pending != 0:
		return p.fail("dangling bond")
	case len(p.mol.Atoms) == 0:
		return ErrEmpty
	}
	return nil
}

// setBond records an explicit bond symbol; -1 marks an aromatic bond.
func (p *parser) setBond(order int) {
	p.pending = order
	p.pos++
}

func (p *parser) ringClosure() error {
	if p.prev < 0 {
		return p.fail("ring closure without atom")
	}
	var num int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) {
			return p.fail("short %nn ring label")
		}
		n, err := strconv.Atoi(p.src[p.pos+1 : p.pos+3])
		if err != nil {
			return p.fail("bad %nn ring label")
		}
		num = n
		p.pos += 3
	} else {
		num = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringOpening{atom: p.prev, order: p.pending}
		p.pending = 0
		return nil
	}
	delete(p.rings, num)

	order := p.pending
	if order == 0 {
		order = open.order
	}
	if open.atom == p.prev {
		return p.fail("ring closes on itself")
	}
	if _, exists := p.mol.BondBetween(open.atom, p.prev); exists {
		return p.fail("duplicate ring bond")
	}
	p.bond(open.atom, p.prev, order)
	p.pending = 0
	return nil
}

func (p *parser) bond(from, to, order int) {
	atoms := p.mol.Atoms
	switch {
	case order == -1:
		p.mol.addBond(from, to, 1, true)
	case order == 0 && atoms[from].Aromatic && atoms[to].Aromatic:
		p.mol.addBond(from, to, 1, true)
	case order == 0:
		p.mol.addBond(from, to, 1, false)
	default:
		p.mol.addBond(from, to, order, false)
	}
}

func (p *parser) attach(a Atom) {
	idx := p.mol.addAtom(a)
	if p.prev >= 0 {
		p.bond(p.prev, idx, p.pending)
	}
	p.pending = 0
	p.prev = idx
}

func (p *parser) organicAtom() error {
	rest := p.src[p.pos:]
	if len(rest) >= 2 && (rest[:2] == "Cl" || rest[:2] == "Br") {
		p.attach(Atom{Symbol: rest[:2], Number: elements[rest[:2]]})
		p.pos += 2
		return nil
	}

	ch := string(rest[0])
	switch ch {
	case "B", "C", "N", "O", "P", "S", "F", "I":
		p.attach(Atom{Symbol: ch, Number: elements[ch]})
	case "b", "c", "n", "o", "p", "s":
		sym := aromaticSymbols[ch]
		p.attach(Atom{Symbol: sym, Number: elements[sym], Aromatic: true})
	default:
		return p.fail(fmt.Sprintf("unexpected character %q", ch))
	}
	p.pos++
	return nil
}

func (p *parser) bracketAtom() error {
	p.pos++ // '['
	for p.pos < len(p.src) && unicode.IsDigit(rune(p.src[p.pos])) {
		p.pos++ // isotope is irrelevant for typing
	}

	atom, err := p.bracketSymbol()
	if err != nil {
		return err
	}
	atom.bracket = true

	for p.pos < len(p.src) && p.src[p.pos] == '@' {
		p.pos++
	}

	if p.pos < len(p.src) && p.src[p.pos] == 'H' {
		p.pos++
		atom.Hydrogens = 1
		if n, ok := p.number(); ok {
			atom.Hydrogens = n
		}
	}

	if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		sign := 1
		if p.src[p.pos] == '-' {
			sign = -1
		}
		sym := p.src[p.pos]
		p.pos++
		magnitude := 1
		if n, ok := p.number(); ok {
			magnitude = n
		} else {
			for p.pos < len(p.src) && p.src[p.pos] == sym {
				magnitude++
				p.pos++
			}
		}
		atom.Charge = sign * magnitude
	}

	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		p.pos++
		if _, ok := p.number(); !ok {
			return p.fail("missing atom class")
		}
	}

	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return p.fail("unterminated bracket atom")
	}
	p.pos++
	p.attach(atom)
	return nil
}

func (p *parser) bracketSymbol() (Atom, error) {
	rest := p.src[p.pos:]
	if rest == "" {
		return Atom{}, p.fail("missing element")
	}

	if len(rest) >= 2 {
		if sym, ok := aromaticSymbols[rest[:2]]; ok {
			p.pos += 2
			return Atom{Symbol: sym, Number: elements[sym], Aromatic: true}, nil
		}
	}
	if sym, ok := aromaticSymbols[rest[:1]]; ok {
		p.pos++
		return Atom{Symbol: sym, Number: elements[sym], Aromatic: true}, nil
	}

	if !unicode.IsUpper(rune(rest[0])) {
		return Atom{}, p.fail("bad element symbol")
	}
	if len(rest) >= 2 && unicode.IsLower(rune(rest[1])) {
		if n, ok := elements[rest[:2]]; ok {
			p.pos += 2
			return Atom{Symbol: rest[:2], Number: n}, nil
		}
	}
	if n, ok := elements[rest[:1]]; ok {
		p.pos++
		return Atom{Symbol: rest[:1], Number: n}, nil
	}
	return Atom{}, p.fail("unknown element")
}

func (p *parser) number() (int, bool) {
	start := p.pos
	for p.pos < len(p.src) && unicode.IsDigit(rune(p.src[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return 0, false
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *Molecule) assignImplicitHydrogens() {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.bracket {
			continue
		}
		valences, ok := defaultValences[a.Symbol]
		if !ok {
			continue
		}
		used := m.valenceUsed(i)
		for _, v := range valences {
			if v < used {
				continue
			}
			h := v - used
			if a.Aromatic {
				h--
			}
			if h > 0 {
				a.Hydrogens = h
			}
			break
		}
	}
}

// foldHydrogens turns explicit [H] atoms bonded to a heavy atom into hydrogen counts.
func (m *Molecule) foldHydrogens() {
	remove := make(map[int]bool)
	for i, a := range m.Atoms {
		if a.Number != 1 || a.Charge != 0 || len(m.adj[i]) != 1 {
			continue
		}
		neighbour := m.Bonds[m.adj[i][0]].Other(i)
		if m.Atoms[neighbour].Number == 1 {
			continue
		}
		m.Atoms[neighbour].Hydrogens++
		remove[i] = true
	}
	if len(remove) == 0 {
		return
	}

	mapping := make([]int, len(m.Atoms))
	atoms := make([]Atom, 0, len(m.Atoms)-len(remove))
	for i, a := range m.Atoms {
		if remove[i] {
			mapping[i] = -1
			continue
		}
		mapping[i] = len(atoms)
		atoms = append(atoms, a)
	}
	bonds := make([]Bond, 0, len(m.Bonds))
	for _, b := range m.Bonds {
		if remove[b.From] || remove[b.To] {
			continue
		}
		b.From, b.To = mapping[b.From], mapping[b.To]
		bonds = append(bonds, b)
	}
	m.Atoms = atoms
	m.Bonds = bonds
	m.reindex()
}
