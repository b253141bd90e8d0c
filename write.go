/*
 * write.go, part of golammps.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dubosese/golammps/v3"
	"github.com/klauspost/compress/gzip"
)

//ftoa prints a float in its shortest exact form, for the fields the format
//leaves free-form.
func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

//dataFile holds everything a write needs, fully derived before the first
//byte goes out: the type tables, the per-instance IDs, the cell bounds and
//the mixed pair coefficients.
type dataFile struct {
	T      *Topology
	O      *Options
	coords *v3.Matrix
	rep    *Report
	st     styles
	typed  bool

	labels []string       //atom-type labels in type-ID order
	index  map[string]int //label -> 1-based type ID
	masses map[int]float64
	sigma  map[int]float64
	eps    map[int]float64

	bondTab  *typeTable[bondKey]
	bondIDs  []int
	angleTab *typeTable[angleKey]
	ubTab    *typeTable[ubAngleKey]
	angleIDs []int
	rbTab    *typeTable[rbKey]
	rbIDs    []int
	opls     [][4]float64 //converted coefficients, parallel to rbTab.keys
	chTab    *typeTable[charmmKey]
	chRecs   []charmmDihedral
	chIDs    []int
	impTab   *typeTable[improperKey]
	impIDs   []int

	box   *boxSpec
	nbfix bool
	pairs []pairCoeff
}

//WriteData writes the topology and coordinates to filename as a LAMMPS
//data file, using the given options (or DefaultOptions if none). A name
//ending in ".gz" produces a gzip-compressed file. Nothing is written if
//the options or the topology fail validation, or if the cell geometry is
//impossible. The returned Report carries the functional-form notices and,
//when cross terms are not inlined, the pair_coeff commands for the input
//script.
func WriteData(filename string, coords *v3.Matrix, T *Topology, opts ...*Options) (*Report, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	title := O.title
	if title == "" {
		title = filename + " - created by golammps"
	}
	d, err := prepare(coords, T, O)
	if err != nil {
		return nil, errDecorate(err, "WriteData")
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	var h io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(strings.ToLower(filename), ".gz") {
		gz = gzip.NewWriter(f)
		h = gz
	}
	bw := bufio.NewWriter(h)
	d.emit(bw, title)
	err = bw.Flush()
	if gz != nil {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, Error{KindValidation, err.Error(), filename, []string{"WriteData"}}
	}
	return d.rep, nil
}

//Write is the stream-level version of WriteData. The title line comes from
//the options, or a generic one if unset.
func Write(w io.Writer, coords *v3.Matrix, T *Topology, opts ...*Options) (*Report, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	title := O.title
	if title == "" {
		title = "LAMMPS data file - created by golammps"
	}
	d, err := prepare(coords, T, O)
	if err != nil {
		return nil, errDecorate(err, "Write")
	}
	bw := bufio.NewWriter(w)
	d.emit(bw, title)
	return d.rep, bw.Flush()
}

//prepare validates the inputs and builds every table and derived value the
//emitter needs. It has no side effects on the topology and writes nothing.
func prepare(coords *v3.Matrix, T *Topology, O *Options) (*dataFile, error) {
	if T == nil || T.Len() == 0 {
		return nil, Error{KindValidation, "empty or nil topology", "", []string{"prepare"}}
	}
	if coords == nil {
		return nil, Error{KindValidation, "nil coordinates", "", []string{"prepare"}}
	}
	if v := coords.NVecs(); v != T.Len() {
		return nil, Error{KindValidation, fmt.Sprintf("%d coordinates given, but %d expected", v, T.Len()), "", []string{"prepare"}}
	}
	if err := O.validate(T); err != nil {
		return nil, err
	}
	d := &dataFile{T: T, O: O, coords: coords, rep: new(Report), typed: T.Typed()}
	var err error
	d.st, err = resolveStyles(T, O, d.rep)
	if err != nil {
		return nil, err
	}
	d.labels, d.index = atomTypes(T)
	d.masses = make(map[int]float64, len(d.labels))
	if d.typed {
		d.sigma = make(map[int]float64, len(d.labels))
		d.eps = make(map[int]float64, len(d.labels))
	}
	for i, at := range T.Atoms {
		id := d.index[T.typeLabel(i)]
		m, ok := atomMass(at)
		if !ok {
			return nil, Error{KindValidation, fmt.Sprintf("atom %d (%s) has no mass and no known element", i, at.Name), "", []string{"prepare"}}
		}
		d.masses[id] = m
		if d.typed {
			d.sigma[id] = at.Sigma
			d.eps[id] = at.Epsilon
		}
	}
	if d.bondTab, d.bondIDs, err = bondTypes(T); err != nil {
		return nil, err
	}
	if d.st.ureyBradley {
		d.ubTab, d.angleIDs, err = ubAngleTypes(T)
	} else {
		d.angleTab, d.angleIDs, err = angleTypes(T)
	}
	if err != nil {
		return nil, err
	}
	switch d.st.dihedrals {
	case dihedralOPLS:
		if d.rbTab, d.rbIDs, err = rbTypes(T); err != nil {
			return nil, err
		}
		if d.rbTab != nil {
			d.opls = make([][4]float64, len(d.rbTab.keys))
			for i, k := range d.rbTab.keys {
				if d.opls[i], err = rbToOPLS(k.c); err != nil {
					return nil, err
				}
			}
		}
	case dihedralCharmm:
		if d.chTab, d.chRecs, d.chIDs, err = charmmTypes(T); err != nil {
			return nil, err
		}
	}
	if d.impTab, d.impIDs, err = improperTypes(T); err != nil {
		return nil, err
	}
	if d.box, err = deriveBox(T.Box); err != nil {
		return nil, err
	}
	if len(T.Angles) > 0 {
		if d.st.ureyBradley {
			d.rep.AngleStyle = "charmm"
		} else {
			d.rep.AngleStyle = "harmonic"
		}
	}
	switch {
	case d.st.dihedrals == dihedralOPLS && len(T.RBTorsions) > 0:
		d.rep.DihedralStyle = "opls"
	case d.st.dihedrals == dihedralCharmm && len(d.chRecs) > 0:
		d.rep.DihedralStyle = "charmm"
	}
	d.nbfix = d.typed && len(T.NBFixes) > 0
	if d.nbfix {
		fixes := normalizeNBFixes(T.NBFixes, d.rep)
		rule := T.CombiningRule
		if rule == "" {
			rule = "lorentz"
		}
		d.rep.notice("Explicitly writing cross interactions using mixing rule: %s", rule)
		if d.pairs, err = derivePairs(d.labels, d.sigma, d.eps, fixes, rule); err != nil {
			return nil, err
		}
		if !O.nbfixInData {
			for _, p := range d.pairs {
				d.rep.PairCommands = append(d.rep.PairCommands,
					fmt.Sprintf("pair_coeff\t%d \t%d \t%s \t\t%s \t\t# %s \t%s",
						p.t1, p.t2, ftoa(p.epsilon), ftoa(p.sigma), d.labels[p.t1-1], d.labels[p.t2-1]))
			}
		}
	}
	return d, nil
}

//typeCount is the "N types" header value for one category: the table size,
//or 1 when instances exist without parameters (they all share type 1).
func typeCount[K comparable](tab *typeTable[K], ids []int) int {
	if tab != nil {
		return tab.n()
	}
	if len(ids) > 0 {
		return 1
	}
	return 0
}

func (d *dataFile) molecular() bool {
	return d.O.atomStyle == Full || d.O.atomStyle == Molecular
}

func (d *dataFile) nDihedrals() int {
	switch d.st.dihedrals {
	case dihedralOPLS:
		return len(d.T.RBTorsions)
	case dihedralCharmm:
		return len(d.chRecs)
	}
	return 0
}

func (d *dataFile) nDihedralTypes() int {
	switch d.st.dihedrals {
	case dihedralOPLS:
		return typeCount(d.rbTab, d.rbIDs)
	case dihedralCharmm:
		return typeCount(d.chTab, d.chIDs)
	}
	return 0
}

func (d *dataFile) nAngleTypes() int {
	if d.st.ureyBradley {
		return typeCount(d.ubTab, d.angleIDs)
	}
	return typeCount(d.angleTab, d.angleIDs)
}

//emit streams the sections in the fixed order the format requires. All
//failure modes were handled in prepare; emit itself can only fail through
//the underlying writer, which the callers check when flushing.
func (d *dataFile) emit(w io.Writer, title string) {
	T := d.T
	fmt.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%d atoms\n", T.Len())
	if d.molecular() {
		fmt.Fprintf(w, "%d bonds\n", len(T.Bonds))
		fmt.Fprintf(w, "%d angles\n", len(T.Angles))
		fmt.Fprintf(w, "%d dihedrals\n", d.nDihedrals())
		fmt.Fprintf(w, "%d impropers\n\n", len(T.Impropers))
	}
	fmt.Fprintf(w, "%d atom types\n", len(d.labels))
	if d.molecular() {
		if len(T.Bonds) > 0 {
			fmt.Fprintf(w, "%d bond types\n", typeCount(d.bondTab, d.bondIDs))
		}
		if len(T.Angles) > 0 {
			fmt.Fprintf(w, "%d angle types\n", d.nAngleTypes())
		}
		if d.nDihedrals() > 0 {
			fmt.Fprintf(w, "%d dihedral types\n", d.nDihedralTypes())
		}
		if len(T.Impropers) > 0 {
			fmt.Fprintf(w, "%d improper types\n", typeCount(d.impTab, d.impIDs))
		}
	}
	fmt.Fprint(w, "\n")
	if d.box.ortho {
		for i, dim := range []string{"x", "y", "z"} {
			fmt.Fprintf(w, "%.6f %.6f %slo %shi\n", d.box.lo[i], d.box.hi[i], dim, dim)
		}
	} else {
		fmt.Fprintf(w, "%.6f %.6f xlo xhi\n", d.box.lo[0], d.box.hi[0])
		fmt.Fprintf(w, "%.6f %.6f ylo yhi\n", d.box.lo[1], d.box.hi[1])
		fmt.Fprintf(w, "%.6f %.6f zlo zhi\n", d.box.lo[2], d.box.hi[2])
		fmt.Fprintf(w, "%.6f %.6f %.6f xy xz yz\n", d.box.xy, d.box.xz, d.box.yz)
	}
	fmt.Fprint(w, "\nMasses\n\n")
	for i, label := range d.labels {
		fmt.Fprintf(w, "%d\t%.6f\t# %s\n", i+1, d.masses[i+1], label)
	}
	if d.typed {
		d.emitCoeffs(w)
	}
	fmt.Fprint(w, "\nAtoms\n\n")
	for i := 0; i < T.Len(); i++ {
		tp := d.index[T.typeLabel(i)]
		x, y, z := d.coords.At(i, 0), d.coords.At(i, 1), d.coords.At(i, 2)
		switch d.O.atomStyle {
		case Atomic:
			fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.6f\n", i+1, tp, x, y, z)
		case Charge:
			fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\n", i+1, tp, T.Atoms[i].Charge, x, y, z)
		case Molecular:
			fmt.Fprintf(w, "%d\t%d\t%d\t%.6f\t%.6f\t%.6f\n", i+1, 0, tp, x, y, z)
		case Full:
			fmt.Fprintf(w, "%d\t%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\n", i+1, 0, tp, T.Atoms[i].Charge, x, y, z)
		}
	}
	if !d.molecular() {
		return
	}
	if len(T.Bonds) > 0 {
		fmt.Fprint(w, "\nBonds\n\n")
		for i, b := range T.Bonds {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", i+1, d.bondIDs[i], b.At1+1, b.At2+1)
		}
	}
	if len(T.Angles) > 0 {
		fmt.Fprint(w, "\nAngles\n\n")
		for i, a := range T.Angles {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", i+1, d.angleIDs[i], a.At1+1, a.At2+1, a.At3+1)
		}
	}
	if d.nDihedrals() > 0 {
		fmt.Fprint(w, "\nDihedrals\n\n")
		switch d.st.dihedrals {
		case dihedralOPLS:
			for i, t := range T.RBTorsions {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n", i+1, d.rbIDs[i], t.At1+1, t.At2+1, t.At3+1, t.At4+1)
			}
		case dihedralCharmm:
			for i, r := range d.chRecs {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n", i+1, d.chIDs[i], r.atoms[0]+1, r.atoms[1]+1, r.atoms[2]+1, r.atoms[3]+1)
			}
		}
	}
	if len(T.Impropers) > 0 {
		fmt.Fprint(w, "\nImpropers\n\n")
		//The format wants the improper atoms in the order 3,2,1,4
		//relative to the topology's own ordering.
		for i, im := range T.Impropers {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n", i+1, d.impIDs[i], im.At3+1, im.At2+1, im.At1+1, im.At4+1)
		}
	}
}

//emitCoeffs writes the per-category coefficient sections. The comment
//token after each section name ("lj", "harmonic", "charmm", "opls") names
//the functional form actually used; downstream tools parse it.
func (d *dataFile) emitCoeffs(w io.Writer) {
	if d.nbfix && d.O.nbfixInData {
		fmt.Fprint(w, "\nPairIJ Coeffs # modified lj\n")
		fmt.Fprint(w, "# type1 type2 \tepsilon (kcal/mol) \tsigma (Angstrom)\n")
		for _, p := range d.pairs {
			fmt.Fprintf(w, "%d \t%d \t%s \t\t%s\t\t# %s\t%s\n",
				p.t1, p.t2, ftoa(p.epsilon), ftoa(p.sigma), d.labels[p.t1-1], d.labels[p.t2-1])
		}
	} else if d.nbfix {
		//the cross terms went to the Report as pair_coeff commands
		fmt.Fprint(w, "\nPair Coeffs # lj\n\n")
		for i := range d.labels {
			fmt.Fprintf(w, "%d\t%.5f\t%.5f\n", i+1, d.eps[i+1], d.sigma[i+1])
		}
	} else {
		fmt.Fprint(w, "\nPair Coeffs # lj \n")
		fmt.Fprint(w, "#\tepsilon (kcal/mol)\t\tsigma (Angstrom)\n")
		for i, label := range d.labels {
			fmt.Fprintf(w, "%d\t%.5f\t\t%.5f\t\t# %s\n", i+1, d.eps[i+1], d.sigma[i+1], label)
		}
	}
	if d.bondTab != nil {
		fmt.Fprint(w, "\nBond Coeffs # harmonic\n")
		fmt.Fprint(w, "#\tk(kcal/mol/angstrom^2)\t\treq(angstrom)\n")
		for i, k := range d.bondTab.keys {
			fmt.Fprintf(w, "%d\t%s\t\t%s\t\t# %s\t%s\n", i+1, ftoa(k.k), ftoa(k.req), k.t1, k.t2)
		}
	}
	if d.ubTab != nil {
		fmt.Fprint(w, "\nAngle Coeffs # charmm\n")
		fmt.Fprint(w, "#\tk(kcal/mol/rad^2)\t\ttheteq(deg)\tk(kcal/mol/angstrom^2)\treq(angstrom)\n")
		for i, k := range d.ubTab.keys {
			fmt.Fprintf(w, "%d\t%s\t%.5f\t%.5f\t%.5f\n", i+1, ftoa(k.k), k.theta, k.ubK, k.ubReq)
		}
	} else if d.angleTab != nil {
		fmt.Fprint(w, "\nAngle Coeffs # harmonic\n")
		fmt.Fprint(w, "#\tk(kcal/mol/rad^2)\t\ttheteq(deg)\n")
		for i, k := range d.angleTab.keys {
			fmt.Fprintf(w, "%d\t%s\t\t%.5f\t# %s\t%s\t%s\n", i+1, ftoa(k.k), k.theta, k.t1, k.vertex, k.t2)
		}
	}
	if d.rbTab != nil {
		fmt.Fprint(w, "\nDihedral Coeffs # opls\n")
		fmt.Fprint(w, "#\tf1(kcal/mol)\tf2(kcal/mol)\tf3(kcal/mol)\tf4(kcal/mol)\n")
		for i, k := range d.rbTab.keys {
			f := d.opls[i]
			fmt.Fprintf(w, "%d\t%.5f\t%.5f\t\t%.5f\t\t%.5f\t# %s\t%s\t%s\t%s\n",
				i+1, f[0], f[1], f[2], f[3], k.t1, k.t2, k.t3, k.t4)
		}
	}
	if d.chTab != nil {
		fmt.Fprint(w, "\nDihedral Coeffs # charmm\n")
		fmt.Fprint(w, "#k, n, phi, weight\n")
		for i, k := range d.chTab.keys {
			fmt.Fprintf(w, "%d\t%.5f\t%d\t%d\t%.5f\t# %s\t%s\t%s\t%s\n",
				i+1, k.phiK, k.per, k.phase, k.weight, k.t1, k.t2, k.t3, k.t4)
		}
	}
	if d.impTab != nil {
		fmt.Fprint(w, "\nImproper Coeffs # harmonic\n")
		fmt.Fprint(w, "#k, psi\n")
		for i, k := range d.impTab.keys {
			fmt.Fprintf(w, "%d\t%.5f\t%.5f\t# %s\t%s\t%s\t%s\n",
				i+1, k.psiK, k.psiEq, k.t1, k.t2, k.t3, k.t4)
		}
	}
}
