/* Compare file names containing version numbers.

   Copyright (C) 1995 Ian Jackson <iwj10@cus.cam.ac.uk>
   Copyright (C) 2001 Anthony Towns <aj@azure.humbug.org.au>
   Copyright (C) 2008-2025 Free Software Foundation, Inc.

   This file is free software: you can redistribute it and/or modify
   it under the terms of the GNU Lesser General Public License as
   published by the Free Software Foundation, either version 3 of the
   License, or (at your option) any later version.

   This file is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Lesser General Public License for more details.

   You should have received a copy of the GNU Lesser General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

// Package gnu orders version strings the way GNU sort -V and dpkg do.
package gnu

// Compare returns -1, 0 or 1 as a is older than, the same as or newer than b.
// Runs of digits compare numerically, ignoring leading zeros. Everything
// else compares by character: letters sort before other symbols and '~'
// sorts before anything, even the end of the string, so "1.0~rc1" < "1.0".
func Compare(a, b string) int {
	for a != "" || b != "" {
		for (a != "" && !isDigit(a[0])) || (b != "" && !isDigit(b[0])) {
			if oa, ob := order(head(a)), order(head(b)); oa != ob {
				return sign(oa - ob)
			}
			a, b = tail(a), tail(b)
		}
		a, b = trimZeros(a), trimZeros(b)
		na, nb := digits(a), digits(b)
		if len(na) != len(nb) {
			return sign(len(na) - len(nb))
		}
		for i := 0; i < len(na); i++ {
			if na[i] != nb[i] {
				return sign(int(na[i]) - int(nb[i]))
			}
		}
		a, b = a[len(na):], b[len(nb):]
	}
	return 0
}

// order ranks one character; 0 stands for the end of the string.
func order(c byte) int {
	switch {
	case isDigit(c), c == 0:
		return 0
	case isAlpha(c):
		return int(c)
	case c == '~':
		return -1
	}
	return int(c) + 256
}

func head(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

func tail(s string) string {
	if s == "" {
		return s
	}
	return s[1:]
}

func trimZeros(s string) string {
	for s != "" && s[0] == '0' {
		s = s[1:]
	}
	return s
}

func digits(s string) string {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
