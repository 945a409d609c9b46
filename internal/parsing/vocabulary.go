package parsing

import "github.com/jonathan/architect-assistant/internal/types"

// TagSynonyms lists the recognized phrases for one tag
type TagSynonyms struct {
	Tag    string   `json:"tag"`
	Strong []string `json:"strong"`
	Weak   []string `json:"weak,omitempty"`
}

// FieldVocabulary is the closed tag set of one enumerated field
type FieldVocabulary struct {
	Field   string        `json:"field"`
	Default string        `json:"default,omitempty"`
	Tags    []TagSynonyms `json:"tags"`
}

// VocabularyTable is the read-only grammar the extractor recognizes
type VocabularyTable struct {
	Fields   []FieldVocabulary           `json:"fields"`
	Defaults types.BuildingSpecification `json:"defaults"`
	Units    []string                    `json:"units"`
}

// Vocabulary returns a copy of the recognized vocabulary and defaults
func Vocabulary() VocabularyTable {
	return VocabularyTable{
		Fields: []FieldVocabulary{
			describe(FieldFacadeMaterial, string(types.DefaultFacadeMaterial), facadeSynonyms),
			describe(FieldRoofType, string(types.DefaultRoofType), roofSynonyms),
			describe(FieldEntranceType, string(types.DefaultEntranceType), entranceSynonyms),
			describe(FieldWindowPattern, string(types.DefaultWindowPattern), windowSynonyms),
			describe(FieldExtras, "", extraSynonyms),
		},
		Defaults: types.Defaults(),
		Units:    []string{"m", "meter", "meters", "metre", "metres"},
	}
}

func describe[T ~string](field, def string, entries []synonyms[T]) FieldVocabulary {
	fv := FieldVocabulary{Field: field, Default: def, Tags: make([]TagSynonyms, 0, len(entries))}
	for _, e := range entries {
		fv.Tags = append(fv.Tags, TagSynonyms{
			Tag:    string(e.Tag),
			Strong: append([]string(nil), e.Strong...),
			Weak:   append([]string(nil), e.Weak...),
		})
	}
	return fv
}
