/*
 * derive.go, part of golammps.
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

//derive.go computes the values that are not present in the topology in the
//form the data file needs: triclinic tilt factors, mixed Lennard-Jones
//cross terms, and the Ryckaert-Bellemans to OPLS torsion conversion.

package lammps

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

//The box is stored in nm and written in A.
const boxUnit = 10.0

//boxSpec is a simulation cell reduced to the form the data file needs, in
//A. For a triclinic cell the lo/hi bounds are already widened by the
//tilt-inclusive LAMMPS formula.
type boxSpec struct {
	ortho      bool
	lo, hi     [3]float64
	xy, xz, yz float64
}

func orthogonal(b Box) bool {
	for _, a := range b.Angles {
		if !scalar.EqualWithinAbsOrRel(a, 90, 1e-8, 1e-5) {
			return false
		}
	}
	return true
}

//deriveBox turns the lengths-and-angles cell description into bounds and
//tilt factors. A cell whose angles can not be realized in 3D space is a
//geometry error, not something to clamp quietly.
func deriveBox(b Box) (*boxSpec, error) {
	s := new(boxSpec)
	if orthogonal(b) {
		s.ortho = true
		maxs := b.Maxs()
		for i := 0; i < 3; i++ {
			s.lo[i] = boxUnit * b.Mins[i]
			s.hi[i] = boxUnit * maxs[i]
		}
		return s, nil
	}
	a := boxUnit * b.Lengths[0]
	bb := boxUnit * b.Lengths[1]
	c := boxUnit * b.Lengths[2]
	alpha := b.Angles[0] * math.Pi / 180
	beta := b.Angles[1] * math.Pi / 180
	gamma := b.Angles[2] * math.Pi / 180

	lx := a
	xy := bb * math.Cos(gamma)
	xz := c * math.Cos(beta)
	ly2 := bb*bb - xy*xy
	if ly2 <= 0 {
		return nil, Error{KindGeometry, fmt.Sprintf("degenerate triclinic cell: b=%g gamma=%g leave no y extent", bb, b.Angles[2]), "", []string{"deriveBox"}}
	}
	ly := math.Sqrt(ly2)
	yz := (bb*c*math.Cos(alpha) - xy*xz) / ly
	lz2 := c*c - xz*xz - yz*yz
	if lz2 <= 0 {
		return nil, Error{KindGeometry, fmt.Sprintf("degenerate triclinic cell: c=%g alpha=%g beta=%g leave no z extent", c, b.Angles[0], b.Angles[1]), "", []string{"deriveBox"}}
	}
	lz := math.Sqrt(lz2)

	xlo := boxUnit * b.Mins[0]
	ylo := boxUnit * b.Mins[1]
	zlo := boxUnit * b.Mins[2]
	xhi := xlo + lx
	yhi := ylo + ly
	zhi := zlo + lz

	s.lo[0] = xlo + math.Min(0, math.Min(xy, math.Min(xz, xy+xz)))
	s.hi[0] = xhi + math.Max(0, math.Max(xy, math.Max(xz, xy+xz)))
	s.lo[1] = ylo + math.Min(0, yz)
	s.hi[1] = yhi + math.Max(0, yz)
	s.lo[2] = zlo
	s.hi[2] = zhi
	s.xy, s.xz, s.yz = xy, xz, yz
	return s, nil
}

//sigmaFromRMin converts a distance-at-minimum into a Lennard-Jones sigma.
func sigmaFromRMin(rmin float64) float64 {
	return rmin / math.Pow(2, 1.0/6.0)
}

//normalizeNBFixes canonicalizes the override table to sorted type-label
//pairs. A pair given twice (or in both orders with different values) is
//suspect but not fatal: the warning is recorded and the last value wins.
func normalizeNBFixes(fixes []*NBFix, rep *Report) map[[2]string][2]float64 {
	if len(fixes) == 0 {
		return nil
	}
	out := make(map[[2]string][2]float64, len(fixes))
	for _, f := range fixes {
		t1, t2 := sortedPair(f.Type1, f.Type2)
		key := [2]string{t1, t2}
		if _, ok := out[key]; ok {
			log.Printf("golammps: repeated or asymmetric NBFix for pair (%s, %s), overwriting the old one", t1, t2)
			rep.notice("repeated or asymmetric NBFix for pair (%s, %s), overwriting the old one", t1, t2)
		}
		out[key] = [2]float64{f.RMin, f.Epsilon}
	}
	return out
}

//pairCoeff is one derived cross term: the 1-based type IDs and the mixed
//(or overridden) Lennard-Jones parameters.
type pairCoeff struct {
	t1, t2         int
	sigma, epsilon float64
}

//derivePairs computes sigma and epsilon for every unordered pair of atom
//types: an explicit override if one exists, the atom's own parameters on
//the diagonal, and the combining rule everywhere else. labels must be in
//type-ID order, and sigma/eps keyed by type ID.
func derivePairs(labels []string, sigma, eps map[int]float64, nbfix map[[2]string][2]float64, rule string) ([]pairCoeff, error) {
	if rule == "" {
		rule = "lorentz"
	}
	coeffs := make([]pairCoeff, 0, len(labels)*(len(labels)+1)/2)
	for i := 0; i < len(labels); i++ {
		for j := i; j < len(labels); j++ {
			t1, t2 := i+1, j+1
			k1, k2 := sortedPair(labels[i], labels[j])
			if fix, ok := nbfix[[2]string{k1, k2}]; ok {
				coeffs = append(coeffs, pairCoeff{t1, t2, round8(sigmaFromRMin(fix[0])), round8(fix[1])})
				continue
			}
			var s, e float64
			if t1 == t2 {
				s = sigma[t1]
				e = eps[t1]
			} else {
				switch rule {
				case "lorentz":
					s = (sigma[t1] + sigma[t2]) * 0.5
				case "geometric":
					s = math.Sqrt(sigma[t1] * sigma[t2])
				default:
					return nil, Error{KindValidation, fmt.Sprintf("Only lorentz and geometric combining rules are supported, not %q", rule), "", []string{"derivePairs"}}
				}
				e = math.Sqrt(eps[t1] * eps[t2])
			}
			coeffs = append(coeffs, pairCoeff{t1, t2, round8(s), round8(e)})
		}
	}
	return coeffs, nil
}

//rbToOPLS converts the six Ryckaert-Bellemans series coefficients into the
//four coefficients of the OPLS cosine series.
func rbToOPLS(c [6]float64) ([4]float64, error) {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return [4]float64{}, Error{KindValidation, fmt.Sprintf("non-finite Ryckaert-Bellemans coefficients %v", c), "", []string{"rbToOPLS"}}
		}
	}
	var f [4]float64
	f[0] = -2*c[1] - 3*c[3]/2
	f[1] = -c[2] - c[4]
	f[2] = -c[3] / 2
	f[3] = -c[4] / 4
	return f, nil
}
