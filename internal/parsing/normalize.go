package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/architect-assistant/internal/types"
)

// Field names used in match reports and the vocabulary table
const (
	FieldFloorCount     = "floor_count"
	FieldFootprint      = "footprint"
	FieldFloorHeight    = "floor_height"
	FieldFacadeMaterial = "facade_material"
	FieldRoofType       = "roof_type"
	FieldEntranceType   = "entrance_type"
	FieldWindowPattern  = "window_pattern"
	FieldExtras         = "extras"
)

// NormalizeText folds a prompt into the form every matcher reads: accents stripped,
// lower-cased, the multiplication sign spelled as "x".
func NormalizeText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)
	return strings.ReplaceAll(folded, "×", "x")
}

// synonyms holds the recognized phrases for one tag. Strong phrases name the tag
// explicitly ("stone facade"); weak ones are bare words that only decide the field
// when no strong phrase is present ("stone").
type synonyms[T ~string] struct {
	Tag    T
	Strong []string
	Weak   []string

	strongRe *regexp.Regexp
	weakRe   *regexp.Regexp
}

var facadeSynonyms = compileSynonyms([]synonyms[types.FacadeMaterial]{
	{
		Tag: types.FacadeGlassCurtainWall,
		Strong: []string{
			"curtain wall", "curtain walls", "curtainwall", "glass facade", "glass curtain",
			"glazed facade", "all glass", "glass cladding", "glass exterior", "glass skin",
		},
		Weak: []string{"glass", "glazed"},
	},
	{
		Tag: types.FacadeStone,
		Strong: []string{
			"stone facade", "stone cladding", "stone exterior", "limestone", "sandstone",
			"granite", "marble", "travertine", "ashlar",
		},
		Weak: []string{"stone"},
	},
	{
		Tag: types.FacadeBrick,
		Strong: []string{
			"brick facade", "brick cladding", "brick exterior", "red brick", "brickwork",
			"exposed brick",
		},
		Weak: []string{"brick", "bricks"},
	},
	{
		Tag:    types.FacadeStucco,
		Strong: []string{"stucco", "plaster facade", "rendered facade", "render facade", "plastered"},
	},
	{
		Tag: types.FacadeConcrete,
		Strong: []string{
			"concrete facade", "exposed concrete", "precast", "precast concrete", "brutalist",
			"beton brut", "board formed concrete",
		},
		Weak: []string{"concrete"},
	},
	{
		Tag: types.FacadeWood,
		Strong: []string{
			"wood facade", "wooden facade", "timber facade", "wood cladding", "timber cladding",
			"cross laminated timber", "clt",
		},
		Weak: []string{"wood", "wooden", "timber"},
	},
	{
		Tag: types.FacadeMetalPanel,
		Strong: []string{
			"metal panel", "metal panels", "metal cladding", "aluminum panels", "aluminium panels",
			"aluminum cladding", "aluminium cladding", "zinc cladding", "corten", "acm panels",
		},
		Weak: []string{"metal", "aluminum", "aluminium"},
	},
})

var roofSynonyms = compileSynonyms([]synonyms[types.RoofType]{
	{
		Tag:    types.RoofFlatParapet,
		Strong: []string{"flat roof", "flat roofed", "parapet", "parapets", "roof terrace", "roof deck"},
	},
	{
		Tag:    types.RoofGabled,
		Strong: []string{"gabled", "gable", "gable roof", "pitched roof", "saddle roof"},
	},
	{
		Tag:    types.RoofMansard,
		Strong: []string{"mansard", "mansard roof", "mansards", "french roof"},
	},
	{
		Tag:    types.RoofHipped,
		Strong: []string{"hipped", "hip roof", "hipped roof", "pavilion roof"},
	},
})

var entranceSynonyms = compileSynonyms([]synonyms[types.EntranceType]{
	{
		Tag:    types.EntranceRevolvingDoor,
		Strong: []string{"revolving door", "revolving doors", "revolving entrance"},
		Weak:   []string{"revolving"},
	},
	{
		Tag:    types.EntranceDoubleDoor,
		Strong: []string{"double door", "double doors", "french doors", "twin doors", "pair of doors"},
	},
	{
		Tag:    types.EntranceArched,
		Strong: []string{"arched entrance", "arched door", "arched doorway", "archway", "arched portal"},
		Weak:   []string{"arch", "arched"},
	},
	{
		Tag:    types.EntranceRecessed,
		Strong: []string{"recessed entrance", "recessed door", "recessed doorway", "recessed entry"},
		Weak:   []string{"recessed"},
	},
	{
		Tag:    types.EntranceCanopy,
		Strong: []string{"canopy entrance", "entrance canopy", "portico", "porte cochere", "awning"},
		Weak:   []string{"canopy"},
	},
})

var windowSynonyms = compileSynonyms([]synonyms[types.WindowPattern]{
	{
		Tag:    types.WindowGrid,
		Strong: []string{"grid windows", "window grid", "gridded windows", "regular windows", "grid of windows"},
	},
	{
		Tag: types.WindowRibbon,
		Strong: []string{
			"ribbon window", "ribbon windows", "strip windows", "strip window", "band windows",
			"horizontal windows", "fenetre en longueur",
		},
	},
	{
		Tag: types.WindowPunched,
		Strong: []string{
			"punched windows", "punched window", "punched openings", "individual windows",
			"sash windows", "vertical windows",
		},
	},
	{
		Tag: types.WindowCurtainContinuous,
		Strong: []string{
			"continuous glazing", "continuous glass", "continuous windows", "floor to ceiling windows",
			"floor to ceiling glazing", "full height glazing", "full height windows", "curtain glazing",
		},
	},
})

var extraSynonyms = compileSynonyms([]synonyms[types.Extra]{
	{
		Tag:    types.ExtraBalconies,
		Strong: []string{"balcony", "balconies", "juliet balcony", "juliet balconies"},
	},
	{
		Tag:    types.ExtraCornices,
		Strong: []string{"cornice", "cornices", "cornicing", "string course", "string courses"},
	},
	{
		Tag:    types.ExtraSetbacks,
		Strong: []string{"setback", "setbacks", "set back", "set backs", "stepped", "tiered", "wedding cake"},
	},
})

// compileSynonyms builds one word-bounded regexp per strength for every tag.
// Longer phrases are tried first so "hipped roof" wins over "hipped" at the same position.
func compileSynonyms[T ~string](entries []synonyms[T]) []synonyms[T] {
	for i := range entries {
		entries[i].strongRe = phraseRegexp(entries[i].Strong)
		entries[i].weakRe = phraseRegexp(entries[i].Weak)
	}
	return entries
}

// phraseRegexp compiles a list of phrases into a single alternation. Spaces inside a
// phrase match any run of whitespace or hyphens so "floor-to-ceiling" and
// "floor to ceiling" are equivalent.
func phraseRegexp(phrases []string) *regexp.Regexp {
	if len(phrases) == 0 {
		return nil
	}
	sorted := append([]string(nil), phrases...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	alts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `[\s\-]+`))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// vocabularyMatch is the earliest occurrence of a tag in the text
type vocabularyMatch[T ~string] struct {
	Tag    T
	Start  int
	End    int
	Strong bool
}

// findVocabulary resolves one enumerated field. The earliest strong match wins; a tie at
// the same position goes to the longer match, then to table order. Without a strong match
// the same rule is applied to weak matches.
func findVocabulary[T ~string](text string, entries []synonyms[T]) (vocabularyMatch[T], bool) {
	if m, ok := earliest(text, entries, true); ok {
		return m, true
	}
	return earliest(text, entries, false)
}

func earliest[T ~string](text string, entries []synonyms[T], strong bool) (vocabularyMatch[T], bool) {
	var best vocabularyMatch[T]
	found := false
	for _, e := range entries {
		re := e.weakRe
		if strong {
			re = e.strongRe
		}
		if re == nil {
			continue
		}
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		better := !found ||
			loc[0] < best.Start ||
			(loc[0] == best.Start && loc[1]-loc[0] > best.End-best.Start)
		if better {
			best = vocabularyMatch[T]{Tag: e.Tag, Start: loc[0], End: loc[1], Strong: strong}
			found = true
		}
	}
	return best, found
}

// findAllVocabulary returns every tag that has at least one strong or weak match, in table order
func findAllVocabulary[T ~string](text string, entries []synonyms[T]) []vocabularyMatch[T] {
	var matches []vocabularyMatch[T]
	for _, e := range entries {
		for _, re := range []*regexp.Regexp{e.strongRe, e.weakRe} {
			if re == nil {
				continue
			}
			if loc := re.FindStringIndex(text); loc != nil {
				matches = append(matches, vocabularyMatch[T]{Tag: e.Tag, Start: loc[0], End: loc[1], Strong: re == e.strongRe})
				break
			}
		}
	}
	return matches
}

// NormalizeTag maps a single phrase to its canonical tag for the given field.
// It returns false when the phrase is not a recognized synonym.
func NormalizeTag(field, phrase string) (string, bool) {
	text := NormalizeText(strings.TrimSpace(phrase))
	if text == "" {
		return "", false
	}
	switch field {
	case FieldFacadeMaterial:
		return normalizeWith(text, facadeSynonyms)
	case FieldRoofType:
		return normalizeWith(text, roofSynonyms)
	case FieldEntranceType:
		return normalizeWith(text, entranceSynonyms)
	case FieldWindowPattern:
		return normalizeWith(text, windowSynonyms)
	case FieldExtras:
		return normalizeWith(text, extraSynonyms)
	default:
		return "", false
	}
}

func normalizeWith[T ~string](text string, entries []synonyms[T]) (string, bool) {
	for _, e := range entries {
		if string(e.Tag) == text {
			return text, true
		}
	}
	m, ok := findVocabulary(text, entries)
	if !ok {
		return "", false
	}
	return string(m.Tag), true
}
