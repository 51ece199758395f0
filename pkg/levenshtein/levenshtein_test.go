// Copyright (c) 2015, Arbo von Monkiewitsch All rights reserved.
// Use of this source code is governed by a BSD-style
// license.

package levenshtein

import (
	"testing"
)

var distanceTestCases = []struct {
	s1     string
	s2     string
	wanted int
}{
	{"", "a", 1},
	{"a", "", 1},
	{"a", "a", 0},
	{"a", "b", 1},
	{"ab", "ab", 0},
	{"ab", "aa", 1},
	{"ab", "aaa", 2},
	{"kitten", "sitting", 3},
	{"sitting", "kitten", 3},
	{"aa", "aü", 1},
	{"Fön", "Föm", 1},
	{"abc", "def", 3},
	{`Foo\Bar`, `Foo\Baz`, 1},
	{`App\Service\Mailer`, `App\Service\Mailer`, 0},
	{`App\Mailer`, `App\Service\Mailer`, 8},
}

func TestDistance(t *testing.T) {
	t.Parallel()

	ctx := &Context{}

	for _, tc := range distanceTestCases {
		got := ctx.Distance(tc.s1, tc.s2)
		if got != tc.wanted {
			t.Errorf("Distance(%q, %q) = %d, want %d", tc.s1, tc.s2, got, tc.wanted)
		}
	}
}

func TestDistanceReusesBuffer(t *testing.T) {
	t.Parallel()

	ctx := &Context{}

	// A long pair grows the internal buffer; short pairs afterwards must
	// still be correct.
	if got := ctx.Distance("aaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbb"); got != 20 {
		t.Errorf("long Distance = %d, want 20", got)
	}

	if got := ctx.Distance("kitten", "sitting"); got != 3 {
		t.Errorf("short Distance after long = %d, want 3", got)
	}
}
