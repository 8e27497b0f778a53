package fixture

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/makeadle/dle-service/internal/domain/catalog"
)

//go:embed data/catalog.json
var defaultCatalog []byte

// Dataset is the offline catalogue the fixture scorer serves.
type Dataset struct {
	Topics []TopicData `json:"topics"`
}

// TopicData groups a topic with its modes and answers.
type TopicData struct {
	catalog.Topic
	Modes   []catalog.Mode   `json:"modes"`
	Answers []catalog.Answer `json:"answers"`
}

// Default returns the catalogue bundled with the binary.
func Default() (*Dataset, error) {
	return Decode(defaultCatalog)
}

// Load reads a catalogue from a JSON file.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return nil, errors.New("fixture catalogue path required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses and validates a JSON catalogue.
func Decode(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode fixture catalogue: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks ids are unique and every tag is one the engine understands.
func (ds *Dataset) Validate() error {
	slugs := map[string]bool{}
	modeIDs := map[int64]bool{}
	for _, t := range ds.Topics {
		if t.Slug == "" {
			return fmt.Errorf("topic %d: slug required", t.ID)
		}
		if slugs[t.Slug] {
			return fmt.Errorf("topic %q: duplicate slug", t.Slug)
		}
		slugs[t.Slug] = true

		for _, m := range t.Modes {
			if !m.Kind.IsValid() {
				return fmt.Errorf("topic %q mode %d: unknown kind %q", t.Slug, m.ID, m.Kind)
			}
			if modeIDs[m.ID] {
				return fmt.Errorf("topic %q mode %d: duplicate id", t.Slug, m.ID)
			}
			modeIDs[m.ID] = true
		}

		answerIDs := map[int64]bool{}
		for _, a := range t.Answers {
			if answerIDs[a.ID] {
				return fmt.Errorf("topic %q answer %d: duplicate id", t.Slug, a.ID)
			}
			answerIDs[a.ID] = true
			for _, attr := range a.Attributes {
				if !attr.Type.IsValid() {
					return fmt.Errorf("topic %q answer %d attribute %q: unknown type %q", t.Slug, a.ID, attr.Name, attr.Type)
				}
			}
		}
	}
	return nil
}
