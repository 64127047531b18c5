// Package stats provides the numeric primitives the anomaly detectors are
// built on: Benford first-digit analysis, IQR outlier detection, round-value
// screening, descriptive statistics and the Gini concentration coefficient.
// Everything operates on decimal values to keep currency math exact.
package stats

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BenfordExpected is the expected first-digit distribution under Benford's
// law. Naturally occurring amounts follow it; fabricated ones often do not.
var BenfordExpected = map[int]decimal.Decimal{
	1: decimal.NewFromFloat(0.301),
	2: decimal.NewFromFloat(0.176),
	3: decimal.NewFromFloat(0.125),
	4: decimal.NewFromFloat(0.097),
	5: decimal.NewFromFloat(0.079),
	6: decimal.NewFromFloat(0.067),
	7: decimal.NewFromFloat(0.058),
	8: decimal.NewFromFloat(0.051),
	9: decimal.NewFromFloat(0.046),
}

// benfordCritical is the chi-square critical value for 8 degrees of freedom
// at alpha=0.05.
var benfordCritical = decimal.NewFromFloat(15.51)

// FirstDigit extracts the first significant digit (1-9) of a value,
// ignoring sign, leading zeros and the decimal point. The second return is
// false for zero values, which have no significant digit.
func FirstDigit(v decimal.Decimal) (int, bool) {
	if v.IsZero() {
		return 0, false
	}
	s := v.Abs().String()
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return 0, false
	}
	return int(s[0] - '0'), true
}

// BenfordDistribution returns the observed first-digit frequencies (digit 1-9
// mapped to a 0-1 fraction) over the non-zero values. An input with no
// usable digit yields an empty map.
func BenfordDistribution(values []decimal.Decimal) map[int]decimal.Decimal {
	counts := make(map[int]int)
	total := 0
	for _, v := range values {
		if d, ok := FirstDigit(v); ok {
			counts[d]++
			total++
		}
	}
	if total == 0 {
		return map[int]decimal.Decimal{}
	}

	dist := make(map[int]decimal.Decimal, 9)
	n := decimal.NewFromInt(int64(total))
	for digit := 1; digit <= 9; digit++ {
		dist[digit] = decimal.NewFromInt(int64(counts[digit])).Div(n)
	}
	return dist
}

// BenfordChiSquare computes the chi-square statistic of the observed
// first-digit distribution against Benford's expectation and reports whether
// it exceeds the critical value. Samples missing any of the nine digits are
// too small to judge and come back as (0, false).
func BenfordChiSquare(values []decimal.Decimal) (decimal.Decimal, bool) {
	dist := BenfordDistribution(values)
	if len(dist) == 0 {
		return decimal.Zero, false
	}

	for digit := 1; digit <= 9; digit++ {
		if dist[digit].IsZero() {
			return decimal.Zero, false
		}
	}

	n := 0
	for _, v := range values {
		if _, ok := FirstDigit(v); ok {
			n++
		}
	}

	chi2 := decimal.Zero
	for digit := 1; digit <= 9; digit++ {
		expected := BenfordExpected[digit]
		diff := dist[digit].Sub(expected)
		chi2 = chi2.Add(diff.Mul(diff).Div(expected))
	}
	chi2 = chi2.Mul(decimal.NewFromInt(int64(n)))

	return chi2, chi2.GreaterThan(benfordCritical)
}

// OutlierKind labels which side of the IQR fence a value fell on.
type OutlierKind string

const (
	OutlierInferior OutlierKind = "inferior"
	OutlierSuperior OutlierKind = "superior"
)

// Outlier is a value flagged by the IQR fence test.
type Outlier struct {
	Valor decimal.Decimal
	Kind  OutlierKind
}

// DefaultIQRMultiplier is the standard Tukey fence multiplier.
var DefaultIQRMultiplier = decimal.NewFromFloat(1.5)

// IQROutliers flags values beyond Q1-mult*IQR or Q3+mult*IQR. At least four
// values are required; smaller inputs yield no outliers. Flagged values are
// returned in input order.
func IQROutliers(values []decimal.Decimal, multiplier decimal.Decimal) []Outlier {
	if len(values) < 4 {
		return nil
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	q1 := sorted[n/4]
	q3 := sorted[(3*n)/4]
	iqr := q3.Sub(q1)

	lower := q1.Sub(multiplier.Mul(iqr))
	upper := q3.Add(multiplier.Mul(iqr))

	var outliers []Outlier
	for _, v := range values {
		switch {
		case v.LessThan(lower):
			outliers = append(outliers, Outlier{Valor: v, Kind: OutlierInferior})
		case v.GreaterThan(upper):
			outliers = append(outliers, Outlier{Valor: v, Kind: OutlierSuperior})
		}
	}
	return outliers
}

// DetectRoundValues flags values at or above minimo that are exact multiples
// of tolerancia. Round deduction amounts tend to be estimates rather than
// receipts. Zero values are never flagged.
func DetectRoundValues(values []decimal.Decimal, tolerancia, minimo decimal.Decimal) []decimal.Decimal {
	var round []decimal.Decimal
	for _, v := range values {
		if v.GreaterThan(decimal.Zero) &&
			v.GreaterThanOrEqual(minimo) &&
			v.Mod(tolerancia).IsZero() {
			round = append(round, v)
		}
	}
	return round
}

// BasicStats carries the descriptive statistics of a sample.
type BasicStats struct {
	Soma    decimal.Decimal
	Media   decimal.Decimal
	Mediana decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// ComputeBasicStats returns sum, mean, median, min and max. The median of an
// even-sized sample averages the two middle values. Empty input returns the
// zero statistics.
func ComputeBasicStats(values []decimal.Decimal) BasicStats {
	if len(values) == 0 {
		return BasicStats{}
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	soma := decimal.Zero
	for _, v := range sorted {
		soma = soma.Add(v)
	}

	var mediana decimal.Decimal
	if n%2 == 0 {
		mediana = sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
	} else {
		mediana = sorted[n/2]
	}

	return BasicStats{
		Soma:    soma,
		Media:   soma.Div(decimal.NewFromInt(int64(n))),
		Mediana: mediana,
		Min:     sorted[0],
		Max:     sorted[n-1],
	}
}

// Gini computes the concentration coefficient of a sample of non-negative
// values: 0 for a perfectly even distribution, approaching 1 when a single
// value dominates. Empty and zero-sum samples return 0.
func Gini(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := int64(len(sorted))
	soma := decimal.Zero
	weighted := decimal.Zero
	for i, v := range sorted {
		soma = soma.Add(v)
		weighted = weighted.Add(v.Mul(decimal.NewFromInt(int64(i + 1))))
	}
	if soma.IsZero() {
		return decimal.Zero
	}

	// G = (2*sum(i*x_i))/(n*sum(x)) - (n+1)/n with 1-based ranks over the
	// ascending sort.
	nDec := decimal.NewFromInt(n)
	return weighted.Mul(decimal.NewFromInt(2)).
		Div(nDec.Mul(soma)).
		Sub(nDec.Add(decimal.NewFromInt(1)).Div(nDec))
}
