package parsing

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/jonathan/architect-assistant/internal/types"
)

const (
	numberPattern = `(\d+(?:\.\d+)?)`
	meterUnit     = `(?:m|meters?|metres?)`
	// anyUnit captures the unit following a number so non-metric mentions can be rejected
	anyUnit = `(?:\s*(m|meters?|metres?|ft|feet|foot|yd|yards?|inch(?:es)?|cm|mm|km)\b)?`
)

var (
	floorCountRe = regexp.MustCompile(`\b([1-9]\d*)\s*(?:-\s*)?(?:floors?|storeys?|stor(?:y|ies)|levels?)\b`)
	// "3 floor height", "4 storey-to-floor": the number belongs to a height phrase
	heightPhraseRe = regexp.MustCompile(`^[\s\-]*(?:heights?|to[\s\-]*floor)\b`)

	footprintRe = regexp.MustCompile(`\b` + numberPattern + `\s*(?:` + meterUnit + `\s*)?(?:x|by|\*)\s*` + numberPattern + anyUnit)

	floorHeightRes = []*regexp.Regexp{
		// "floor height 3 meters", "floor-to-floor height of 3.2 m", "storey height: 4"
		regexp.MustCompile(`\b(?:floor|storey|story)[\s\-]*(?:to[\s\-]*floor[\s\-]*)?height(?:\s+(?:of|is))?\s*[:=]?\s*(?:of\s+)?` + numberPattern + anyUnit),
		// "floor-to-floor 3.5m"
		regexp.MustCompile(`\bfloor[\s\-]*to[\s\-]*floor(?:\s+(?:of|is))?\s*[:=]?\s*` + numberPattern + anyUnit),
		// "3 m floor height", "3.5 meters per floor", "4m ceilings"
		regexp.MustCompile(`\b` + numberPattern + `\s*(` + meterUnit + `)\s+(?:floor[\s\-]*(?:to[\s\-]*floor[\s\-]*)?heights?|floor[\s\-]*to[\s\-]*floor|per\s+(?:floor|storey|story)|ceilings?|(?:storey|story)\s+heights?)\b`),
	}
)

// numericMatch is one accepted numeric mention in reading order
type numericMatch struct {
	Start  int
	End    int
	Values []float64
}

// isMetric reports whether a captured unit is absent or a meter spelling
func isMetric(unit string) bool {
	switch unit {
	case "", "m", "meter", "meters", "metre", "metres":
		return true
	default:
		return false
	}
}

// signedOrFractional reports whether the number starting at pos is the tail of a
// negative, decimal or digit-grouped literal ("-3", "2.5", "3,5", "1,200"), which the
// grammar must not accept.
func signedOrFractional(text string, pos int) bool {
	if pos == 0 {
		return false
	}
	switch text[pos-1] {
	case '-', '.', '+':
		return true
	case ',':
		return pos >= 2 && isDigit(text[pos-2])
	}
	return false
}

// digitGrouped reports whether the number ending at end continues as ",<digit>"
func digitGrouped(text string, end int) bool {
	return end+1 < len(text) && text[end] == ',' && isDigit(text[end+1])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// matchFloorCount returns the first "<n> floors" mention within bounds
func matchFloorCount(text string) (int, numericMatch, bool) {
	for _, loc := range floorCountRe.FindAllStringSubmatchIndex(text, -1) {
		numStart, numEnd := loc[2], loc[3]
		if signedOrFractional(text, numStart) || heightPhraseRe.MatchString(text[loc[1]:]) {
			continue
		}
		n, err := strconv.Atoi(text[numStart:numEnd])
		if err != nil || n < 1 || n > types.MaxFloorCount {
			continue
		}
		return n, numericMatch{Start: loc[0], End: loc[1], Values: []float64{float64(n)}}, true
	}
	return 0, numericMatch{}, false
}

// matchFootprint returns the first "<w>x<d> [meters]" mention within bounds
func matchFootprint(text string) (types.Footprint, numericMatch, bool) {
	for _, loc := range footprintRe.FindAllStringSubmatchIndex(text, -1) {
		if signedOrFractional(text, loc[2]) || digitGrouped(text, loc[5]) {
			continue
		}
		unit := ""
		if loc[6] >= 0 {
			unit = text[loc[6]:loc[7]]
		}
		if !isMetric(unit) {
			continue
		}
		w, okW := parsePositive(text[loc[2]:loc[3]])
		d, okD := parsePositive(text[loc[4]:loc[5]])
		if !okW || !okD || w > types.MaxFootprintDimension || d > types.MaxFootprintDimension {
			continue
		}
		return types.Footprint{Width: w, Depth: d}, numericMatch{Start: loc[0], End: loc[1], Values: []float64{w, d}}, true
	}
	return types.Footprint{}, numericMatch{}, false
}

// matchFloorHeight returns the earliest floor-height mention across all phrasings
func matchFloorHeight(text string) (float64, numericMatch, bool) {
	var candidates []numericMatch
	for _, re := range floorHeightRes {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if signedOrFractional(text, loc[2]) || digitGrouped(text, loc[3]) {
				continue
			}
			unit := ""
			if loc[4] >= 0 {
				unit = text[loc[4]:loc[5]]
			}
			if !isMetric(unit) {
				continue
			}
			h, ok := parsePositive(text[loc[2]:loc[3]])
			if !ok || h > types.MaxFloorHeight {
				continue
			}
			candidates = append(candidates, numericMatch{Start: loc[0], End: loc[1], Values: []float64{h}})
		}
	}
	if len(candidates) == 0 {
		return 0, numericMatch{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Start < candidates[j].Start })
	return candidates[0].Values[0], candidates[0], true
}
