/*
Copyright © 2024 the ATHIM authors.
This file is part of ATHIM.

ATHIM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ATHIM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ATHIM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package epi holds dose-response relationships between physical
// activity and disease risk.
package epi

import "math"

// Sex identifies the sex dimension of a population stratum.
type Sex int

// Sexes, in stratified-array index order.
const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "M"
	case Female:
		return "F"
	}
	return "unknown"
}

// ParseSex converts "M" or "F" to a Sex.
func ParseSex(s string) (Sex, bool) {
	switch s {
	case "M", "m", "male":
		return Male, true
	case "F", "f", "female":
		return Female, true
	}
	return 0, false
}

// Disease identifies a disease with a physical-activity dose-response
// relationship. Road traffic injuries follow a different causal pathway
// and are deliberately not part of this set.
type Disease int

// The diseases included in the model.
const (
	BreastCancer Disease = iota
	ColonCancer
	CVD
	Dementia
	Depression
	Diabetes
)

// Diseases lists all modeled diseases in a fixed order.
var Diseases = []Disease{BreastCancer, ColonCancer, CVD, Dementia, Depression, Diabetes}

func (d Disease) String() string {
	switch d {
	case BreastCancer:
		return "breast_cancer"
	case ColonCancer:
		return "colon_cancer"
	case CVD:
		return "cvd"
	case Dementia:
		return "dementia"
	case Depression:
		return "depression"
	case Diabetes:
		return "diabetes"
	}
	return "unknown"
}

// ParseDisease converts a disease name, as returned by
// Disease.String, to a Disease.
func ParseDisease(s string) (Disease, bool) {
	for _, d := range Diseases {
		if s == d.String() {
			return d, true
		}
	}
	return 0, false
}

// RRer is an interface for any type that can calculate the relative
// risk of disease at physical activity exposure x, relative to zero
// exposure. Exposure is in MET-hours per week.
type RRer interface {
	RR(x float64) float64
	Name() string
}

// PowerLaw is a dose-response curve of the form RR(x) = RR₁^(x^K),
// where RR₁ is the relative risk at one MET-hour per week of exposure.
// With K < 1 the marginal benefit of activity diminishes as exposure
// grows, matching the curvature observed in physical activity cohort
// studies.
type PowerLaw struct {
	// RR1 is the relative risk at unit exposure.
	RR1 float64

	// K is the extrapolation exponent.
	K float64

	// Label is the name of the curve.
	Label string
}

// RR calculates the relative risk at exposure x MET-hours/week.
func (p PowerLaw) RR(x float64) float64 {
	return math.Pow(p.RR1, math.Pow(x, p.K))
}

// Name returns the label for this curve.
func (p PowerLaw) Name() string { return p.Label }

// Anchor is a literature-reported relative risk RR observed at
// exposure Exposure (MET-hours/week), the raw material for a
// dose-response curve.
type Anchor struct {
	Exposure, RR float64

	// Label is the name of the study the anchor is from.
	Label string
}

// PowerLaw converts the anchor into per-unit-exposure form using
// extrapolation exponent k: RR₁ = RR^((1/Exposure)^k). The resulting
// curve passes exactly through the anchor point.
func (a Anchor) PowerLaw(k float64) PowerLaw {
	return PowerLaw{
		RR1:   math.Pow(a.RR, math.Pow(1/a.Exposure, k)),
		K:     k,
		Label: a.Label,
	}
}

// Monninkhof2007BreastCancer is the association between physical
// activity and breast cancer incidence from the review:
//
// Monninkhof EM, Elias SG, Vlems FA, van der Tweel I, Schuit AJ,
// Voskuil DW, van Leeuwen FE (2007). Physical activity and breast
// cancer: a systematic review. Epidemiology 18(1):137-157.
var Monninkhof2007BreastCancer = Anchor{
	Exposure: 12.5,
	RR:       0.94,
	Label:    "Monninkhof2007BreastCancer",
}

// Harriss2009ColonCancerMen and Harriss2009ColonCancerWomen are the
// sex-specific associations between physical activity and colon cancer
// incidence from the meta-analysis:
//
// Harriss DJ, Atkinson G, Batterham A, George K, Cable NT, Reilly T,
// Haboubi N, Renehan AG (2009). Lifestyle factors and colorectal cancer
// risk (2): a systematic review and meta-analysis of associations with
// leisure-time physical activity. Colorectal Disease 11(7):689-701.
var (
	Harriss2009ColonCancerMen = Anchor{
		Exposure: 30.9,
		RR:       0.80,
		Label:    "Harriss2009ColonCancerMen",
	}
	Harriss2009ColonCancerWomen = Anchor{
		Exposure: 30.9,
		RR:       0.86,
		Label:    "Harriss2009ColonCancerWomen",
	}
)

// HamerChida2008CVD is the association between walking and
// cardiovascular disease from the meta-analysis:
//
// Hamer M, Chida Y (2008). Walking and primary prevention: a
// meta-analysis of prospective cohort studies. British Journal of
// Sports Medicine 42(4):238-243.
var HamerChida2008CVD = Anchor{
	Exposure: 7.5,
	RR:       0.84,
	Label:    "HamerChida2008CVD",
}

// HamerChida2009Dementia is the association between physical activity
// and dementia from the meta-analysis:
//
// Hamer M, Chida Y (2009). Physical activity and risk of
// neurodegenerative disease: a systematic review of prospective
// evidence. Psychological Medicine 39(1):3-11.
var HamerChida2009Dementia = Anchor{
	Exposure: 31.5,
	RR:       0.72,
	Label:    "HamerChida2009Dementia",
}

// Paffenbarger1994DepressionYoung and Paffenbarger1994DepressionOld
// are the age-specific associations between physical activity and
// depression from the cohort study:
//
// Paffenbarger RS, Lee IM, Leung R (1994). Physical activity and
// personal characteristics associated with depression and suicide in
// American college men. Acta Psychiatrica Scandinavica 89(s377):16-22.
var (
	Paffenbarger1994DepressionYoung = Anchor{
		Exposure: 11.25,
		RR:       0.927,
		Label:    "Paffenbarger1994DepressionYoung",
	}
	Paffenbarger1994DepressionOld = Anchor{
		Exposure: 11.25,
		RR:       0.941,
		Label:    "Paffenbarger1994DepressionOld",
	}
)

// Jeon2007Diabetes is the association between moderate-intensity
// physical activity and type 2 diabetes from the meta-analysis:
//
// Jeon CY, Lokken RP, Hu FB, van Dam RM (2007). Physical activity of
// moderate intensity and risk of type 2 diabetes: a systematic review.
// Diabetes Care 30(3):744-752.
var Jeon2007Diabetes = Anchor{
	Exposure: 10.0,
	RR:       0.83,
	Label:    "Jeon2007Diabetes",
}

// depressionAgeSplit is the age class (1-based, inclusive) below which
// the young-adult depression anchor applies.
const depressionAgeSplit = 4

// AnchorFor returns the literature anchor for disease d in the stratum
// identified by sex and 1-based age class. Most diseases share one
// anchor across all strata; colon cancer differs by sex and depression
// by age.
func AnchorFor(d Disease, sex Sex, ageClass int) Anchor {
	switch d {
	case BreastCancer:
		return Monninkhof2007BreastCancer
	case ColonCancer:
		if sex == Female {
			return Harriss2009ColonCancerWomen
		}
		return Harriss2009ColonCancerMen
	case CVD:
		return HamerChida2008CVD
	case Dementia:
		return HamerChida2009Dementia
	case Depression:
		if ageClass < depressionAgeSplit {
			return Paffenbarger1994DepressionYoung
		}
		return Paffenbarger1994DepressionOld
	case Diabetes:
		return Jeon2007Diabetes
	}
	panic("epi: unknown disease")
}

// Curve returns the dose-response curve for disease d in the stratum
// identified by sex and 1-based age class, using extrapolation
// exponent k.
func Curve(d Disease, sex Sex, ageClass int, k float64) PowerLaw {
	return AnchorFor(d, sex, ageClass).PowerLaw(k)
}
