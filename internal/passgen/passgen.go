// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package passgen generates random passwords from selectable character
// classes. Characters are drawn uniformly with crypto/rand and the result is
// guaranteed to contain at least one character of every selected class, so
// a generated password with all classes enabled always satisfies the vault's
// password rule when it is long enough.
package passgen

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

// Character classes.
const (
	UpperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerChars  = "abcdefghijklmnopqrstuvwxyz"
	DigitChars  = "0123456789"
	SymbolChars = "!#@$%_"
)

// DefaultLength is the password length used by the CLI when none is given.
const DefaultLength = 16

// maxAttempts bounds the rejection loop. With every class selected and the
// minimum length the probability of needing more draws than this is
// negligible.
const maxAttempts = 1000

// Options selects the character classes a password is drawn from.
type Options struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// AllClasses returns Options with every class enabled.
func AllClasses() Options {
	return Options{Upper: true, Lower: true, Digits: true, Symbols: true}
}

func (o Options) classes() []string {
	classes := make([]string, 0, 4)
	if o.Upper {
		classes = append(classes, UpperChars)
	}
	if o.Lower {
		classes = append(classes, LowerChars)
	}
	if o.Digits {
		classes = append(classes, DigitChars)
	}
	if o.Symbols {
		classes = append(classes, SymbolChars)
	}
	return classes
}

// Generate returns a password of the given length built from the classes
// selected in opts. The boolean is false when no class is selected, when
// length cannot hold one character of every selected class, or when the
// random source fails.
func Generate(length int, opts Options) (string, bool) {
	return generate(rand.Reader, length, opts)
}

func generate(random io.Reader, length int, opts Options) (string, bool) {
	classes := opts.classes()
	if len(classes) == 0 || length < len(classes) {
		return "", false
	}

	alphabet := strings.Join(classes, "")
	size := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		for i := range buf {
			n, err := rand.Int(random, size)
			if err != nil {
				return "", false
			}
			buf[i] = alphabet[n.Int64()]
		}

		if coversAll(buf, classes) {
			return string(buf), true
		}
	}

	return "", false
}

func coversAll(password []byte, classes []string) bool {
	for _, class := range classes {
		if !strings.ContainsAny(string(password), class) {
			return false
		}
	}
	return true
}
