/*
 * doc.go, part of golammps.
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

/*Package lammps writes LAMMPS data files from an in-memory molecular topology.

The package takes an already-resolved topology (atoms, bonds, angles,
dihedrals, impropers, a simulation box and per-term force-field parameters)
and serializes it in the format read by the LAMMPS "read_data" command,
assuming "real" units.


	**Capabilities**

    Writes the atom styles atomic, charge, molecular and full.

    Collapses per-interaction parameters into a minimal set of numbered
	types per category (masses, pair, bond, angle, dihedral, improper),
	with stable, reproducible numbering.

    Detects the functional form to use from the topology contents:
	harmonic or CHARMM (Urey-Bradley) angles, OPLS (from
	Ryckaert-Bellemans parameters) or CHARMM multi-term dihedrals.

    Derives Lennard-Jones cross terms with the lorentz or geometric
	combining rules, honoring explicit NBFIX-style overrides, either
	inlined in the data file (PairIJ Coeffs) or returned as input-script
	pair_coeff commands.

    Writes orthogonal and triclinic (tilted) simulation boxes.

    Writes gzip-compressed data files when the file name ends in ".gz".

The input topology is never modified. Writing is a single synchronous pass:
all type tables are built in memory first, then the sections are streamed
out in the fixed order the format requires.
*/
package lammps
