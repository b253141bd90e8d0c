/*
 * lammps.go, part of golammps.
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

//Atom contains the per-atom data used by the writer. Coordinates are kept
//separately, in a v3.Matrix.
type Atom struct {
	Name    string
	Type    string //force-field atom type. Empty on every atom means the topology carries no force field.
	Symbol  string //chemical element, used to guess the mass when Mass is 0.
	Mass    float64
	Charge  float64
	Sigma   float64 //Lennard-Jones sigma, in A.
	Epsilon float64 //Lennard-Jones well depth, in kcal/mol.
}

//BondTerm is a harmonic stretching parameter set. It is also the parameter
//set of an Urey-Bradley 1-3 term.
type BondTerm struct {
	K   float64 //kcal/mol/A^2
	Req float64 //A
}

//Bond is a bond between the atoms with the (0-based) indexes At1 and At2.
//Several bonds may share one parameter term. A nil Term means the topology
//carries no parameters for this bond.
type Bond struct {
	At1, At2 int
	Term     *BondTerm
}

//AngleTerm is a harmonic bending parameter set.
type AngleTerm struct {
	K       float64 //kcal/mol/rad^2
	ThetaEq float64 //degrees
}

//Angle is an angle with vertex At2.
type Angle struct {
	At1, At2, At3 int
	Term          *AngleTerm
}

//UreyBradley is the 1-3 stretch term of a CHARMM-style angle, between the
//two end atoms of its parent angle.
type UreyBradley struct {
	At1, At2 int
	Term     *BondTerm
}

//RBTerm is a Ryckaert-Bellemans torsion parameter set: six series
//coefficients plus the 1-4 electrostatic and Lennard-Jones scaling factors.
type RBTerm struct {
	C          [6]float64 //kcal/mol
	SCEE, SCNB float64
}

//RBTorsion is a proper dihedral parameterized in the Ryckaert-Bellemans
//form.
type RBTorsion struct {
	At1, At2, At3, At4 int
	Term               *RBTerm
}

//TorsionTerm is one cosine term of a CHARMM-style dihedral.
type TorsionTerm struct {
	PhiK       float64 //kcal/mol
	Per        int     //periodicity
	Phase      float64 //degrees
	SCEE, SCNB float64
}

//Torsion is a CHARMM-style multi-term dihedral. A Torsion with the Improper
//flag set describes improper geometry and is excluded from the Dihedrals
//section.
type Torsion struct {
	At1, At2, At3, At4 int
	Improper           bool
	Terms              []*TorsionTerm
}

//ImproperTerm is a harmonic improper parameter set.
type ImproperTerm struct {
	PsiK  float64 //kcal/mol
	PsiEq float64 //degrees
}

//Improper is a harmonic improper torsion.
type Improper struct {
	At1, At2, At3, At4 int
	Term               *ImproperTerm
}

//NBFix is an explicit Lennard-Jones override for one pair of atom types,
//replacing the combining-rule result for that pair only. RMin is the
//distance at the potential minimum, in A; the writer converts it to sigma.
//The pair is unordered: an NBFix for (a,b) also applies to (b,a).
type NBFix struct {
	Type1, Type2 string
	RMin         float64 //A
	Epsilon      float64 //kcal/mol
}

//Box describes the simulation cell. Lengths and the origin are in nm (they
//are written to the data file in A), angles in degrees. A box with all
//three angles at 90 degrees is orthogonal; anything else is triclinic and
//gets tilt factors in the output.
type Box struct {
	Lengths [3]float64
	Angles  [3]float64
	Mins    [3]float64
}

//Maxs returns the upper corner of the (untilted) bounding box.
func (B Box) Maxs() [3]float64 {
	var m [3]float64
	for i := 0; i < 3; i++ {
		m[i] = B.Mins[i] + B.Lengths[i]
	}
	return m
}

//Topology is the read-only input of the writer: atoms, bonded terms, the
//simulation cell and the nonbonded parameters. The writer never modifies
//it.
type Topology struct {
	Atoms        []*Atom
	Bonds        []*Bond
	Angles       []*Angle
	UreyBradleys []*UreyBradley
	RBTorsions   []*RBTorsion
	Torsions     []*Torsion
	Impropers    []*Improper
	NBFixes      []*NBFix
	Box          Box
	//CombiningRule is the mixing rule for cross-type Lennard-Jones
	//parameters: "lorentz" (the default if empty) or "geometric".
	CombiningRule string
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Typed returns whether the topology carries force-field atom types. Like
//the original formats that feed this writer, it is decided by the first
//atom: either all atoms are typed or none is.
func (T *Topology) Typed() bool {
	if len(T.Atoms) == 0 {
		return false
	}
	return T.Atoms[0].Type != ""
}

//typeLabel returns the label identifying the type of the ith atom: the
//force-field type if present, the atom name otherwise.
func (T *Topology) typeLabel(i int) string {
	if T.Typed() {
		return T.Atoms[i].Type
	}
	return T.Atoms[i].Name
}
