/*
 * canonical.go, part of golammps.
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

//canonical.go collapses the per-interaction parameters of a topology into
//numbered types. Each category (bond, angle, dihedral, improper) maps its
//interactions to a canonical key of rounded parameters plus atom-type
//labels; equal keys share one type ID. The rounding (3 decimals for force
//constants and equilibrium values, 1 for scaling factors) is deliberate:
//parameters that differ only by floating-point noise collapse into one
//type. IDs are assigned 1..N over the sorted key set, so the numbering is
//a pure function of the topology and identical runs give identical files.

package lammps

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func round1(x float64) float64 { return roundTo(x, 1) }
func round3(x float64) float64 { return roundTo(x, 3) }
func round4(x float64) float64 { return roundTo(x, 4) }
func round8(x float64) float64 { return roundTo(x, 8) }

//naturalCompare orders strings so that embedded unsigned integers compare
//by value: "C2" sorts before "C10". Outside digit runs it is plain
//byte-wise comparison.
func naturalCompare(a, b string) int {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if c := cmp.Compare(len(na), len(nb)); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if c := cmp.Compare(a[i], b[j]); c != 0 {
			return c
		}
		i++
		j++
	}
	return cmp.Compare(len(a)-i, len(b)-j)
}

//chain returns the first non-zero comparison, for lexicographic orders
//over key tuples.
func chain(cs ...int) int {
	for _, c := range cs {
		if c != 0 {
			return c
		}
	}
	return 0
}

//typeTable maps the canonical keys of one category to their IDs. keys[i]
//carries the ID i+1.
type typeTable[K comparable] struct {
	ids  map[K]int
	keys []K
}

//newTypeTable collapses duplicates in all and numbers the distinct keys
//1..N in the order given by compare.
func newTypeTable[K comparable](all []K, compare func(K, K) int) *typeTable[K] {
	seen := make(map[K]bool, len(all))
	uniq := make([]K, 0, len(all))
	for _, k := range all {
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, k)
		}
	}
	slices.SortFunc(uniq, compare)
	ids := make(map[K]int, len(uniq))
	for i, k := range uniq {
		ids[k] = i + 1
	}
	return &typeTable[K]{ids: ids, keys: uniq}
}

//id resolves a canonical key. A miss can not happen for keys the table was
//built from, so it is reported as a defect, not a recoverable condition.
func (t *typeTable[K]) id(k K) (int, error) {
	id, ok := t.ids[k]
	if !ok {
		return 0, Error{KindInternal, fmt.Sprintf("canonical key %v missing from its type table", k), "", []string{"id"}}
	}
	return id, nil
}

func (t *typeTable[K]) n() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

//defaultIDs is the degenerate numbering used when a category carries no
//parameters at all: every instance is of type 1.
func defaultIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = 1
	}
	return ids
}

//countTerms returns how many of the n instances carry a parameter term,
//via the has predicate.
func countTerms(n int, has func(int) bool) int {
	c := 0
	for i := 0; i < n; i++ {
		if has(i) {
			c++
		}
	}
	return c
}

//atomTypes returns the distinct atom-type labels of the topology in
//natural order, and the map from label to 1-based type ID.
func atomTypes(T *Topology) ([]string, map[string]int) {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for i := range T.Atoms {
		l := T.typeLabel(i)
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	slices.SortFunc(labels, naturalCompare)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i + 1
	}
	return labels, index
}

func sortedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

type bondKey struct {
	k, req float64
	t1, t2 string //lexicographically sorted pair
}

func compareBondKeys(a, b bondKey) int {
	return chain(
		cmp.Compare(a.k, b.k),
		cmp.Compare(a.req, b.req),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2))
}

//bondTypes builds the bond type table and the per-bond IDs. If no bond
//carries parameters, every bond is of type 1 and there is no table; a
//partially parameterized bond list is inconsistent and rejected.
func bondTypes(T *Topology) (*typeTable[bondKey], []int, error) {
	n := len(T.Bonds)
	if n == 0 {
		return nil, nil, nil
	}
	withTerm := countTerms(n, func(i int) bool { return T.Bonds[i].Term != nil })
	if withTerm == 0 {
		return nil, defaultIDs(n), nil
	}
	if withTerm != n {
		return nil, nil, Error{KindValidation, "some bonds carry parameters and some do not", "", []string{"bondTypes"}}
	}
	keys := make([]bondKey, n)
	for i, b := range T.Bonds {
		t1, t2 := sortedPair(T.typeLabel(b.At1), T.typeLabel(b.At2))
		keys[i] = bondKey{round3(b.Term.K), round3(b.Term.Req), t1, t2}
	}
	tab := newTypeTable(keys, compareBondKeys)
	ids := make([]int, n)
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, errDecorate(err, "bondTypes")
		}
		ids[i] = id
	}
	return tab, ids, nil
}

type angleKey struct {
	k, theta float64
	vertex   string
	t1, t2   string //the end atoms, sorted
}

func compareAngleKeys(a, b angleKey) int {
	return chain(
		cmp.Compare(a.k, b.k),
		cmp.Compare(a.theta, b.theta),
		strings.Compare(a.vertex, b.vertex),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2))
}

func angleTypes(T *Topology) (*typeTable[angleKey], []int, error) {
	n := len(T.Angles)
	if n == 0 {
		return nil, nil, nil
	}
	withTerm := countTerms(n, func(i int) bool { return T.Angles[i].Term != nil })
	if withTerm == 0 {
		return nil, defaultIDs(n), nil
	}
	if withTerm != n {
		return nil, nil, Error{KindValidation, "some angles carry parameters and some do not", "", []string{"angleTypes"}}
	}
	keys := make([]angleKey, n)
	for i, a := range T.Angles {
		t1, t2 := sortedPair(T.typeLabel(a.At1), T.typeLabel(a.At3))
		keys[i] = angleKey{round3(a.Term.K), round3(a.Term.ThetaEq), T.typeLabel(a.At2), t1, t2}
	}
	tab := newTypeTable(keys, compareAngleKeys)
	ids := make([]int, n)
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, errDecorate(err, "angleTypes")
		}
		ids[i] = id
	}
	return tab, ids, nil
}

type ubAngleKey struct {
	k, theta   float64
	ubK, ubReq float64
	t1, t2     string //the end atoms, sorted
}

func compareUBAngleKeys(a, b ubAngleKey) int {
	return chain(
		cmp.Compare(a.k, b.k),
		cmp.Compare(a.theta, b.theta),
		cmp.Compare(a.ubK, b.ubK),
		cmp.Compare(a.ubReq, b.ubReq),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2))
}

//ubAngleTypes is the CHARMM-style variant of angleTypes. The Urey-Bradley
//1-3 term of each angle is found by its endpoint pair; angles without one
//get zero stretch parameters.
func ubAngleTypes(T *Topology) (*typeTable[ubAngleKey], []int, error) {
	n := len(T.Angles)
	if n == 0 {
		return nil, nil, nil
	}
	withTerm := countTerms(n, func(i int) bool { return T.Angles[i].Term != nil })
	if withTerm == 0 {
		return nil, defaultIDs(n), nil
	}
	if withTerm != n {
		return nil, nil, Error{KindValidation, "some angles carry parameters and some do not", "", []string{"ubAngleTypes"}}
	}
	//Index the stretch terms by endpoint pair once, instead of scanning
	//the whole list for every angle.
	ub := make(map[[2]int]*BondTerm, len(T.UreyBradleys))
	for _, u := range T.UreyBradleys {
		ub[[2]int{u.At1, u.At2}] = u.Term
	}
	keys := make([]ubAngleKey, n)
	for i, a := range T.Angles {
		var ubK, ubReq float64
		if term := ub[[2]int{a.At1, a.At3}]; term != nil {
			ubK = term.K
			ubReq = term.Req
		}
		t1, t2 := sortedPair(T.typeLabel(a.At1), T.typeLabel(a.At3))
		keys[i] = ubAngleKey{round3(a.Term.K), round3(a.Term.ThetaEq), round3(ubK), round3(ubReq), t1, t2}
	}
	tab := newTypeTable(keys, compareUBAngleKeys)
	ids := make([]int, n)
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, errDecorate(err, "ubAngleTypes")
		}
		ids[i] = id
	}
	return tab, ids, nil
}

type rbKey struct {
	c          [6]float64
	scee, scnb float64
	t1, t2     string //the four atom types in original order
	t3, t4     string
}

func compareRBKeys(a, b rbKey) int {
	for i := 0; i < 6; i++ {
		if c := cmp.Compare(a.c[i], b.c[i]); c != 0 {
			return c
		}
	}
	return chain(
		cmp.Compare(a.scee, b.scee),
		cmp.Compare(a.scnb, b.scnb),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2),
		strings.Compare(a.t3, b.t3),
		strings.Compare(a.t4, b.t4))
}

func rbTypes(T *Topology) (*typeTable[rbKey], []int, error) {
	n := len(T.RBTorsions)
	if n == 0 {
		return nil, nil, nil
	}
	withTerm := countTerms(n, func(i int) bool { return T.RBTorsions[i].Term != nil })
	if withTerm == 0 {
		return nil, defaultIDs(n), nil
	}
	if withTerm != n {
		return nil, nil, Error{KindValidation, "some torsions carry parameters and some do not", "", []string{"rbTypes"}}
	}
	keys := make([]rbKey, n)
	for i, d := range T.RBTorsions {
		var c [6]float64
		for j, v := range d.Term.C {
			c[j] = round3(v)
		}
		keys[i] = rbKey{c, round1(d.Term.SCEE), round1(d.Term.SCNB),
			T.typeLabel(d.At1), T.typeLabel(d.At2), T.typeLabel(d.At3), T.typeLabel(d.At4)}
	}
	tab := newTypeTable(keys, compareRBKeys)
	ids := make([]int, n)
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, errDecorate(err, "rbTypes")
		}
		ids[i] = id
	}
	return tab, ids, nil
}

type charmmKey struct {
	phiK       float64
	per, phase int
	weight     float64
	scee, scnb float64
	t1, t2     string //the four atom types in original order
	t3, t4     string
}

func compareCharmmKeys(a, b charmmKey) int {
	return chain(
		cmp.Compare(a.phiK, b.phiK),
		cmp.Compare(a.per, b.per),
		cmp.Compare(a.phase, b.phase),
		cmp.Compare(a.weight, b.weight),
		cmp.Compare(a.scee, b.scee),
		cmp.Compare(a.scnb, b.scnb),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2),
		strings.Compare(a.t3, b.t3),
		strings.Compare(a.t4, b.t4))
}

//charmmDihedral is one emitted CHARMM dihedral record: a multi-term
//torsion contributes one record per cosine term, each weighted by
//1/(number of terms).
type charmmDihedral struct {
	atoms [4]int
	key   charmmKey
}

//charmmTypes expands the multi-term torsions into per-term records and
//builds their type table. Torsions flagged as improper geometry are left
//out of the expansion.
func charmmTypes(T *Topology) (*typeTable[charmmKey], []charmmDihedral, []int, error) {
	if len(T.Torsions) == 0 {
		return nil, nil, nil, nil
	}
	withTerm := countTerms(len(T.Torsions), func(i int) bool { return len(T.Torsions[i].Terms) > 0 })
	if withTerm == 0 {
		records := make([]charmmDihedral, 0, len(T.Torsions))
		for _, d := range T.Torsions {
			if d.Improper {
				continue
			}
			records = append(records, charmmDihedral{atoms: [4]int{d.At1, d.At2, d.At3, d.At4}})
		}
		return nil, records, defaultIDs(len(records)), nil
	}
	if withTerm != len(T.Torsions) {
		return nil, nil, nil, Error{KindValidation, "some dihedrals carry parameters and some do not", "", []string{"charmmTypes"}}
	}
	records := make([]charmmDihedral, 0, len(T.Torsions))
	for _, d := range T.Torsions {
		if d.Improper {
			continue
		}
		weight := round4(1 / float64(len(d.Terms)))
		for _, term := range d.Terms {
			k := charmmKey{round3(term.PhiK), term.Per, int(math.Round(term.Phase)), weight,
				round1(term.SCEE), round1(term.SCNB),
				T.typeLabel(d.At1), T.typeLabel(d.At2), T.typeLabel(d.At3), T.typeLabel(d.At4)}
			records = append(records, charmmDihedral{atoms: [4]int{d.At1, d.At2, d.At3, d.At4}, key: k})
		}
	}
	keys := make([]charmmKey, len(records))
	for i, r := range records {
		keys[i] = r.key
	}
	tab := newTypeTable(keys, compareCharmmKeys)
	ids := make([]int, len(records))
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, nil, errDecorate(err, "charmmTypes")
		}
		ids[i] = id
	}
	return tab, records, ids, nil
}

type improperKey struct {
	psiK, psiEq float64
	t1, t2      string //the four atom types in original order
	t3, t4      string
}

func compareImproperKeys(a, b improperKey) int {
	return chain(
		cmp.Compare(a.psiK, b.psiK),
		cmp.Compare(a.psiEq, b.psiEq),
		strings.Compare(a.t1, b.t1),
		strings.Compare(a.t2, b.t2),
		strings.Compare(a.t3, b.t3),
		strings.Compare(a.t4, b.t4))
}

func improperTypes(T *Topology) (*typeTable[improperKey], []int, error) {
	n := len(T.Impropers)
	if n == 0 {
		return nil, nil, nil
	}
	withTerm := countTerms(n, func(i int) bool { return T.Impropers[i].Term != nil })
	if withTerm == 0 {
		return nil, defaultIDs(n), nil
	}
	if withTerm != n {
		return nil, nil, Error{KindValidation, "some impropers carry parameters and some do not", "", []string{"improperTypes"}}
	}
	keys := make([]improperKey, n)
	for i, im := range T.Impropers {
		keys[i] = improperKey{round3(im.Term.PsiK), round3(im.Term.PsiEq),
			T.typeLabel(im.At1), T.typeLabel(im.At2), T.typeLabel(im.At3), T.typeLabel(im.At4)}
	}
	tab := newTypeTable(keys, compareImproperKeys)
	ids := make([]int, n)
	for i, k := range keys {
		id, err := tab.id(k)
		if err != nil {
			return nil, nil, errDecorate(err, "improperTypes")
		}
		ids[i] = id
	}
	return tab, ids, nil
}
