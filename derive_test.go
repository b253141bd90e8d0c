/*
 * derive_test.go, part of golammps.
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
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"
)

func close5(a, b float64) bool {
	return math.Abs(a-b) < 1e-5
}

func TestRBToOPLS(Te *testing.T) {
	f, err := rbToOPLS([6]float64{1, -2, 3, -4, 5, 0})
	if err != nil {
		Te.Fatal(err)
	}
	want := [4]float64{10, -8, 2, -1.25}
	for i := range f {
		if !close5(f[i], want[i]) {
			Te.Errorf("f%d = %g, want %g", i+1, f[i], want[i])
		}
	}
	if _, err := rbToOPLS([6]float64{math.NaN(), 0, 0, 0, 0, 0}); err == nil {
		Te.Error("non-finite coefficients were accepted")
	}
}

func TestSigmaFromRMin(Te *testing.T) {
	if s := sigmaFromRMin(1.2); !close5(s, 1.06909) {
		Te.Errorf("sigma from rmin 1.2: %g", s)
	}
}

func TestDeriveBoxOrthogonal(Te *testing.T) {
	b := Box{Lengths: [3]float64{1, 2, 3}, Angles: [3]float64{90, 90, 90}, Mins: [3]float64{-0.5, 0, 0}}
	s, err := deriveBox(b)
	if err != nil {
		Te.Fatal(err)
	}
	if !s.ortho {
		Te.Fatal("a 90-degree cell was not recognized as orthogonal")
	}
	if !close5(s.lo[0], -5) || !close5(s.hi[0], 5) || !close5(s.hi[1], 20) || !close5(s.hi[2], 30) {
		Te.Errorf("bounds lo=%v hi=%v", s.lo, s.hi)
	}
}

func TestDeriveBoxTriclinic(Te *testing.T) {
	b := Box{Lengths: [3]float64{1, 1, 1}, Angles: [3]float64{90, 90, 60}}
	s, err := deriveBox(b)
	if err != nil {
		Te.Fatal(err)
	}
	if s.ortho {
		Te.Fatal("a 60-degree cell came out orthogonal")
	}
	if !close5(s.xy, 5) || !close5(s.xz, 0) || !close5(s.yz, 0) {
		Te.Errorf("tilt factors xy=%g xz=%g yz=%g", s.xy, s.xz, s.yz)
	}
	//bounds are widened by the tilt
	if !close5(s.hi[0], 15) || !close5(s.hi[1], math.Sqrt(75)) {
		Te.Errorf("bounds lo=%v hi=%v", s.lo, s.hi)
	}
	//an impossible cell is a geometry error, not a NaN in the file
	_, err = deriveBox(Box{Lengths: [3]float64{1, 1, 1}, Angles: [3]float64{90, 90, 180}})
	if err == nil {
		Te.Fatal("a degenerate cell was accepted")
	}
	if e, ok := err.(Error); !ok || e.Kind() != KindGeometry {
		Te.Errorf("wrong error for a degenerate cell: %v", err)
	}
}

func TestDerivePairs(Te *testing.T) {
	labels := []string{"C1", "C2", "C3"}
	sigma := map[int]float64{1: 3.5, 2: 2.5, 3: 3.0}
	eps := map[int]float64{1: 0.066, 2: 0.030, 3: 0.1}
	nbfix := map[[2]string][2]float64{{"C1", "C3"}: {1.2, 2.1}}

	pairs, err := derivePairs(labels, sigma, eps, nbfix, "lorentz")
	if err != nil {
		Te.Fatal(err)
	}
	if len(pairs) != 6 {
		Te.Fatalf("%d pairs for 3 types, want 6", len(pairs))
	}
	byPair := make(map[[2]int]pairCoeff, len(pairs))
	for _, p := range pairs {
		byPair[[2]int{p.t1, p.t2}] = p
	}
	if p := byPair[[2]int{1, 1}]; !close5(p.sigma, 3.5) || !close5(p.epsilon, 0.066) {
		Te.Errorf("diagonal pair (1,1): %+v", p)
	}
	if p := byPair[[2]int{1, 2}]; !close5(p.sigma, 3.0) || !close5(p.epsilon, math.Sqrt(0.066*0.030)) {
		Te.Errorf("lorentz pair (1,2): %+v", p)
	}
	if p := byPair[[2]int{1, 3}]; !close5(p.sigma, 1.06909) || !close5(p.epsilon, 2.1) {
		Te.Errorf("overridden pair (1,3): %+v", p)
	}

	pairs, err = derivePairs(labels, sigma, eps, nil, "geometric")
	if err != nil {
		Te.Fatal(err)
	}
	for _, p := range pairs {
		if p.t1 == 1 && p.t2 == 2 {
			if !close5(p.sigma, math.Sqrt(3.5*2.5)) {
				Te.Errorf("geometric pair (1,2): %+v", p)
			}
		}
	}

	if _, err := derivePairs(labels, sigma, eps, nil, "kong"); err == nil {
		Te.Error("an unsupported combining rule was accepted")
	}
}

func TestNormalizeNBFixes(Te *testing.T) {
	rep := new(Report)
	fixes := []*NBFix{
		{Type1: "CT", Type2: "OW", RMin: 3.5, Epsilon: 0.1},
		{Type1: "OW", Type2: "CT", RMin: 3.6, Epsilon: 0.2},
	}
	out := normalizeNBFixes(fixes, rep)
	if len(out) != 1 {
		Te.Fatalf("%d normalized overrides, want 1", len(out))
	}
	got := out[[2]string{"CT", "OW"}]
	if got[0] != 3.6 || got[1] != 0.2 {
		Te.Errorf("the last override did not win: %v", got)
	}
	if len(rep.Notices) == 0 || !strings.Contains(rep.Notices[len(rep.Notices)-1], "repeated or asymmetric") {
		Te.Error("no warning was recorded for the duplicated pair")
	}
}

//parse a PairIJ Coeffs row into type IDs, epsilon and sigma.
func parsePairRow(Te *testing.T, row string) (int, int, float64, float64) {
	fs := strings.Fields(row)
	if len(fs) < 4 {
		Te.Fatalf("short PairIJ row %q", row)
	}
	t1, _ := strconv.Atoi(fs[0])
	t2, _ := strconv.Atoi(fs[1])
	e, err := strconv.ParseFloat(fs[2], 64)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := strconv.ParseFloat(fs[3], 64)
	if err != nil {
		Te.Fatal(err)
	}
	return t1, t2, e, s
}

func TestPairIJSection(Te *testing.T) {
	T, coords := testTopology()
	//override the C10/H1 cross term; types number C2=1, C10=2, H1=3
	T.NBFixes = []*NBFix{{Type1: "H1", Type2: "C10", RMin: 1.2, Epsilon: 2.1}}
	var buf bytes.Buffer
	rep, err := Write(&buf, coords, T)
	if err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "PairIJ Coeffs # modified lj") {
		Te.Fatal("no PairIJ Coeffs section with an NBFix present")
	}
	if strings.Contains(out, "\nPair Coeffs") {
		Te.Error("both pair sections were written")
	}
	rows := section(out, "PairIJ Coeffs")
	if len(rows) != 6 {
		Te.Fatalf("%d PairIJ rows for 3 types, want 6", len(rows))
	}
	for _, row := range rows {
		t1, t2, e, s := parsePairRow(Te, row)
		switch {
		case t1 == 2 && t2 == 3: //the overridden C10/H1 pair
			if !close5(e, 2.1) || !close5(s, 1.06909) {
				Te.Errorf("override not applied: %q", row)
			}
		case t1 == 1 && t2 == 2: //C2/C10, lorentz-mixed
			if !close5(s, 3.0) || !close5(e, math.Sqrt(0.030*0.066)) {
				Te.Errorf("bad mixed pair: %q", row)
			}
		case t1 == 1 && t2 == 1:
			if !close5(s, 2.5) || !close5(e, 0.030) {
				Te.Errorf("bad diagonal pair: %q", row)
			}
		}
	}
	if len(rep.PairCommands) != 0 {
		Te.Error("pair_coeff commands returned although the cross terms were inlined")
	}
}

func TestPairCommands(Te *testing.T) {
	T, coords := testTopology()
	T.NBFixes = []*NBFix{{Type1: "H1", Type2: "C10", RMin: 1.2, Epsilon: 2.1}}
	O := DefaultOptions()
	O.NBFixInData(false)
	var buf bytes.Buffer
	rep, err := Write(&buf, coords, T, O)
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Contains(buf.String(), "PairIJ") {
		Te.Error("a PairIJ section was written although cross terms go to the input script")
	}
	if len(rep.PairCommands) != 6 {
		Te.Fatalf("%d pair_coeff commands, want 6", len(rep.PairCommands))
	}
	for _, c := range rep.PairCommands {
		if !strings.HasPrefix(c, "pair_coeff") {
			Te.Errorf("malformed command %q", c)
		}
	}
}

func TestBadCombiningRule(Te *testing.T) {
	T, coords := testTopology()
	T.CombiningRule = "kong"
	var buf bytes.Buffer
	_, err := Write(&buf, coords, T)
	if err == nil {
		Te.Fatal("an unsupported combining rule was accepted")
	}
	if e, ok := err.(Error); !ok || e.Kind() != KindValidation {
		Te.Errorf("wrong error: %v", err)
	}
	if buf.Len() != 0 {
		Te.Error("bytes were written for a rejected topology")
	}
}
