/*
 * errors.go, part of golammps.
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

import "fmt"

//ErrorKind classifies the errors produced by this package.
type ErrorKind int

const (
	//KindValidation marks bad options or an inconsistent topology,
	//caught before anything is written.
	KindValidation ErrorKind = iota
	//KindGeometry marks an impossible simulation cell.
	KindGeometry
	//KindInternal marks a broken invariant. It is always a bug in this
	//package, never a recoverable condition.
	KindInternal
)

//Error is the lammps implementation of the decorated errors used across
//this library.
type Error struct {
	kind     ErrorKind
	message  string
	filename string //the output file involved, or empty if none.
	deco     []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("lammps data file %s: %s", err.filename, err.message)
	}
	return err.message
}

//Kind returns the classification of the error.
func (err Error) Kind() ErrorKind { return err.kind }

//FileName returns the file to which the failing write was associated.
func (err Error) FileName() string { return err.filename }

//Decorate adds new information to the error and returns the resulting
//decoration slice.
func (err Error) Decorate(dec string) []string {
	//Even though this method does not use a pointer as a receiver, it
	//works, since err.deco is a slice, and hence a pointer itself.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that the error implements the decorated-error
//convention of this library and adds the caller's name to it before
//returning it. It will panic if used on any other error.
func errDecorate(err error, caller string) error {
	err2 := err.(interface {
		error
		Decorate(string) []string
	})
	err2.Decorate(caller)
	return err2
}
