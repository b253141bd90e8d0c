/*
 * options.go, part of golammps.
 *
 * Copyright 2024 The golammps developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package lammps

import (
	"fmt"
	"slices"
)

//The atom styles this writer supports. See the LAMMPS atom_style
//documentation for their record layouts.
const (
	Atomic    = "atomic"
	Charge    = "charge"
	Molecular = "molecular"
	Full      = "full"
)

var atomStyles = []string{Atomic, Charge, Molecular, Full}

//Options contains the settings for a data-file write.
type Options struct {
	atomStyle       string
	detect          bool //infer the functional forms from the topology contents
	ureyBradleys    bool
	rbTorsions      bool
	charmmDihedrals bool
	nbfixInData     bool //write cross terms as a PairIJ Coeffs section instead of pair_coeff commands
	title           string
}

//DefaultOptions returns reasonable settings: full atom style, functional
//forms detected from the topology, and explicit cross terms written into
//the data file itself.
func DefaultOptions() *Options {
	r := new(Options)
	r.atomStyle = Full
	r.detect = true
	r.rbTorsions = true
	r.nbfixInData = true
	return r
}

//AtomStyle returns the atom style to write, and sets it to a new value,
//if given.
func (O *Options) AtomStyle(s ...string) string {
	if len(s) > 0 {
		O.atomStyle = s[0]
	}
	return O.atomStyle
}

//Detect returns whether the functional forms are inferred from the
//topology contents, and sets it, if given. When off, the UreyBradleys,
//RBTorsions and CharmmDihedrals settings are taken as given.
func (O *Options) Detect(b ...bool) bool {
	if len(b) > 0 {
		O.detect = b[0]
	}
	return O.detect
}

//UreyBradleys returns whether angles are written as CHARMM-style angles
//with Urey-Bradley terms, and sets it, if given. Ignored when Detect is on.
func (O *Options) UreyBradleys(b ...bool) bool {
	if len(b) > 0 {
		O.ureyBradleys = b[0]
	}
	return O.ureyBradleys
}

//RBTorsions returns whether dihedrals are written OPLS-style from the
//topology's Ryckaert-Bellemans torsions, and sets it, if given. Ignored
//when Detect is on.
func (O *Options) RBTorsions(b ...bool) bool {
	if len(b) > 0 {
		O.rbTorsions = b[0]
	}
	return O.rbTorsions
}

//CharmmDihedrals returns whether dihedrals are written CHARMM-style from
//the topology's multi-term torsions, and sets it, if given. Ignored when
//Detect is on.
func (O *Options) CharmmDihedrals(b ...bool) bool {
	if len(b) > 0 {
		O.charmmDihedrals = b[0]
	}
	return O.charmmDihedrals
}

//NBFixInData returns whether explicit cross terms go into the data file as
//a PairIJ Coeffs section (true) or are returned as pair_coeff input-script
//commands on the Report (false), and sets it, if given.
func (O *Options) NBFixInData(b ...bool) bool {
	if len(b) > 0 {
		O.nbfixInData = b[0]
	}
	return O.nbfixInData
}

//Title returns the text of the first line of the data file, and sets it,
//if given. If empty, WriteData uses the file name.
func (O *Options) Title(s ...string) string {
	if len(s) > 0 {
		O.title = s[0]
	}
	return O.title
}

//validate rejects settings the writer can not honor. It runs before
//anything is written.
func (O *Options) validate(T *Topology) error {
	if !slices.Contains(atomStyles, O.atomStyle) {
		return Error{KindValidation, fmt.Sprintf("Atom style %q is invalid or is not currently supported", O.atomStyle), "", []string{"validate"}}
	}
	switch T.CombiningRule {
	case "", "lorentz", "geometric":
	default:
		return Error{KindValidation, fmt.Sprintf("Only lorentz and geometric combining rules are supported, not %q", T.CombiningRule), "", []string{"validate"}}
	}
	return nil
}

//Report is what a write hands back besides the file: the functional forms
//actually used, the notices that older tools printed to the console, and,
//when cross terms are not inlined, the pair_coeff commands to paste into
//the input script.
type Report struct {
	AngleStyle    string //"harmonic" or "charmm", empty if no angles were written
	DihedralStyle string //"opls", "charmm" or empty
	Notices       []string
	PairCommands  []string
}

func (R *Report) notice(format string, args ...interface{}) {
	R.Notices = append(R.Notices, fmt.Sprintf(format, args...))
}

//dihedralMode selects which torsion list is serialized.
type dihedralMode int

const (
	dihedralNone dihedralMode = iota
	dihedralOPLS              //Ryckaert-Bellemans input, written as dihedral_style opls
	dihedralCharmm
)

type styles struct {
	ureyBradley bool
	dihedrals   dihedralMode
}

//resolveStyles decides the functional forms for the write, either from the
//topology contents or from the explicit settings. Requesting (or
//detecting) both dihedral parameterizations at once is ambiguous and
//rejected.
func resolveStyles(T *Topology, O *Options, rep *Report) (styles, error) {
	ub := O.ureyBradleys
	rb := O.rbTorsions
	charmm := O.charmmDihedrals
	if O.detect {
		if len(T.UreyBradleys) > 0 {
			rep.notice("Urey-Bradley terms detected, will use angle_style charmm")
			ub = true
		} else {
			rep.notice("No Urey-Bradley terms detected, will use angle_style harmonic")
			ub = false
		}
		rb = len(T.RBTorsions) > 0
		if rb {
			rep.notice("RB torsions detected, will use dihedral_style opls")
		}
		charmm = len(T.Torsions) > 0
		if charmm {
			rep.notice("CHARMM dihedrals detected, will use dihedral_style charmm")
		}
	}
	if rb && charmm {
		return styles{}, Error{KindValidation, "Multiple dihedral styles detected, check your force field and topology", "", []string{"resolveStyles"}}
	}
	st := styles{ureyBradley: ub}
	switch {
	case rb:
		st.dihedrals = dihedralOPLS
	case charmm:
		st.dihedrals = dihedralCharmm
	}
	return st, nil
}
