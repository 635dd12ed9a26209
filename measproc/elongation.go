// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-gg/table"
)

// SplitBaseline partitions an aggregated table into the rows measured
// against the neutral application on the secondary core (the
// baseline) and all other rows (the stressed rows). Every row lands in
// exactly one of the two.
func SplitBaseline(t *table.Table) (baseline, stressed *table.Table, err error) {
	ident, ok := t.Column(ColCore1Ident).([]string)
	if !ok {
		return nil, nil, &KeyError{Stage: "split", Missing: []string{ColCore1Ident}}
	}
	var base, rest []int
	for i, id := range ident {
		if IsNeutral(id) {
			base = append(base, i)
		} else {
			rest = append(rest, i)
		}
	}
	return selectRows(t, base), selectRows(t, rest), nil
}

// Elongate attaches to each stressed row the baseline mean of its
// context and the ratio between the two.
//
// A stressed row matches the baseline row that agrees with it on every
// field of key except ColCore1Ident. The matched mean goes to
// ColMeanRef and mean/ref to ColElongation. Rows with no baseline, or
// whose baseline is zero, keep NaN in both columns as appropriate and
// are reported in the returned warnings. If several baseline rows
// match, the first is used.
func Elongate(stressed, baseline *table.Table, key Key) (*table.Table, []error, error) {
	if err := key.check(stressed, "elongate", ColMean); err != nil {
		return nil, nil, err
	}
	if err := key.check(baseline, "elongate baseline", ColMean); err != nil {
		return nil, nil, err
	}
	join := key.Without(ColCore1Ident)

	var warnings []error
	index := make(map[string]int)
	benc := join.encoder(baseline)
	var dups int
	for i := 0; i < baseline.Len(); i++ {
		k := benc(i)
		if _, ok := index[k]; ok {
			dups++
			continue
		}
		index[k] = i
	}
	if dups > 0 {
		warnings = append(warnings, fmt.Errorf("%d baseline row(s) share a context with an earlier baseline; using the first", dups))
	}

	bmean := baseline.MustColumn(ColMean).([]float64)
	smean := stressed.MustColumn(ColMean).([]float64)
	refs := make([]float64, stressed.Len())
	elong := make([]float64, stressed.Len())
	senc := join.encoder(stressed)
	var noBase, zeroBase []string
	for i := range refs {
		refs[i], elong[i] = math.NaN(), math.NaN()
		j, ok := index[senc(i)]
		if !ok {
			noBase = append(noBase, join.describe(stressed, i))
			continue
		}
		refs[i] = bmean[j]
		if bmean[j] == 0 {
			zeroBase = append(zeroBase, join.describe(stressed, i))
			continue
		}
		elong[i] = smean[i] / bmean[j]
	}
	if len(noBase) > 0 {
		warnings = append(warnings, fmt.Errorf("%d stressed row(s) have no baseline: %s", len(noBase), examples(noBase)))
	}
	if len(zeroBase) > 0 {
		warnings = append(warnings, fmt.Errorf("%d stressed row(s) have a zero baseline: %s", len(zeroBase), examples(zeroBase)))
	}

	out := table.NewBuilder(stressed).Add(ColMeanRef, refs).Add(ColElongation, elong).Done()
	return out, warnings, nil
}

func examples(ss []string) string {
	const max = 3
	if len(ss) <= max {
		return strings.Join(ss, "; ")
	}
	return strings.Join(ss[:max], "; ") + fmt.Sprintf("; and %d more", len(ss)-max)
}
