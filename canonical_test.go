/*
 * canonical_test.go, part of golammps.
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
	"slices"
	"testing"
)

func TestNaturalCompare(Te *testing.T) {
	labels := []string{"H1", "C10", "CA", "C2A", "C2"}
	slices.SortFunc(labels, naturalCompare)
	want := []string{"C2", "C2A", "C10", "CA", "H1"}
	if !slices.Equal(labels, want) {
		Te.Errorf("natural sort gave %v, want %v", labels, want)
	}
	if naturalCompare("C02", "C2") != 0 {
		Te.Error("leading zeros should not distinguish equal numbers")
	}
	if naturalCompare("C2", "C10") >= 0 {
		Te.Error("C2 should sort before C10")
	}
}

func TestBondDedup(Te *testing.T) {
	//parameters differing only past the third decimal, and the same pair
	//of types given in both orders, must collapse into one bond type
	T := &Topology{
		Atoms: []*Atom{
			{Name: "a", Type: "CT", Mass: 12},
			{Name: "b", Type: "HC", Mass: 1},
			{Name: "c", Type: "CT", Mass: 12},
			{Name: "d", Type: "HC", Mass: 1},
		},
		Bonds: []*Bond{
			{At1: 0, At2: 1, Term: &BondTerm{K: 340.0001, Req: 1.09}},
			{At1: 3, At2: 2, Term: &BondTerm{K: 340.0004, Req: 1.09}},
		},
	}
	tab, ids, err := bondTypes(T)
	if err != nil {
		Te.Fatal(err)
	}
	if tab.n() != 1 {
		Te.Errorf("%d bond types, want 1", tab.n())
	}
	if ids[0] != 1 || ids[1] != 1 {
		Te.Errorf("bond IDs %v, want [1 1]", ids)
	}
}

func TestMixedParameterization(Te *testing.T) {
	T := &Topology{
		Atoms: []*Atom{{Name: "a", Type: "CT", Mass: 12}, {Name: "b", Type: "CT", Mass: 12}, {Name: "c", Type: "CT", Mass: 12}},
		Bonds: []*Bond{
			{At1: 0, At2: 1, Term: &BondTerm{K: 268, Req: 1.529}},
			{At1: 1, At2: 2}, //no parameters
		},
	}
	_, _, err := bondTypes(T)
	if err == nil {
		Te.Fatal("a half-parameterized bond list was accepted")
	}
	if e, ok := err.(Error); !ok || e.Kind() != KindValidation {
		Te.Errorf("wrong error: %v", err)
	}
}

func TestUreyBradleyMatching(Te *testing.T) {
	bend := &AngleTerm{K: 50, ThetaEq: 120}
	T := &Topology{
		Atoms: []*Atom{
			{Name: "a", Type: "CA", Mass: 12},
			{Name: "b", Type: "CA", Mass: 12},
			{Name: "c", Type: "CA", Mass: 12},
			{Name: "d", Type: "CA", Mass: 12},
		},
		Angles: []*Angle{
			{At1: 0, At2: 1, At3: 2, Term: bend},
			{At1: 1, At2: 2, At3: 3, Term: bend},
		},
		//the first pair matches the first angle's endpoints as given; the
		//second is reversed and therefore does not match anything
		UreyBradleys: []*UreyBradley{
			{At1: 0, At2: 2, Term: &BondTerm{K: 10, Req: 2.0}},
			{At1: 3, At2: 1, Term: &BondTerm{K: 20, Req: 2.5}},
		},
	}
	tab, ids, err := ubAngleTypes(T)
	if err != nil {
		Te.Fatal(err)
	}
	if tab.n() != 2 {
		Te.Fatalf("%d angle types, want 2", tab.n())
	}
	matched := tab.keys[ids[0]-1]
	if matched.ubK != 10 || matched.ubReq != 2.0 {
		Te.Errorf("first angle got stretch parameters %g, %g", matched.ubK, matched.ubReq)
	}
	unmatched := tab.keys[ids[1]-1]
	if unmatched.ubK != 0 || unmatched.ubReq != 0 {
		Te.Errorf("reversed 1-3 pair was matched: %g, %g", unmatched.ubK, unmatched.ubReq)
	}
}

func TestCharmmExpansion(Te *testing.T) {
	terms := []*TorsionTerm{
		{PhiK: 3.1, Per: 2, Phase: 180, SCEE: 1.2, SCNB: 2.0},
		{PhiK: 0.2, Per: 3, Phase: 0, SCEE: 1.2, SCNB: 2.0},
		{PhiK: 0.1, Per: 1, Phase: 0, SCEE: 1.2, SCNB: 2.0},
	}
	T := &Topology{
		Atoms: []*Atom{
			{Name: "a", Type: "C", Mass: 12},
			{Name: "b", Type: "C", Mass: 12},
			{Name: "c", Type: "C", Mass: 12},
			{Name: "d", Type: "C", Mass: 12},
		},
		Torsions: []*Torsion{
			{At1: 0, At2: 1, At3: 2, At4: 3, Terms: terms},
			{At1: 3, At2: 2, At3: 1, At4: 0, Improper: true, Terms: terms[:1]},
		},
	}
	tab, recs, ids, err := charmmTypes(T)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 3 || len(ids) != 3 {
		Te.Fatalf("%d records from a three-term torsion, want 3", len(recs))
	}
	if tab.n() != 3 {
		Te.Errorf("%d dihedral types, want 3", tab.n())
	}
	for i, r := range recs {
		if r.key.weight != round4(1.0/3.0) {
			Te.Errorf("record %d has weight %g", i, r.key.weight)
		}
		if r.atoms != [4]int{0, 1, 2, 3} {
			Te.Errorf("record %d atoms %v", i, r.atoms)
		}
	}
}
