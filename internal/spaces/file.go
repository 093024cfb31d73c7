package spaces

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/scoring"
)

// spaceFile is the on-disk YAML form of a decision space.
//
//	name: PPM tool selection
//	state: evaluating
//	criteria:
//	  - id: cost
//	    name: Cost
//	    weight: 5
//	tools:
//	  - id: jira
//	    name: Jira
//	    ratings: {cost: 2}
//
// A criterion with a weight counts as rated; one without starts at the
// default weight, unrated. A state past framing must be reachable with the
// file's criteria and tools.
type spaceFile struct {
	Name        string          `yaml:"name" validate:"required"`
	Description string          `yaml:"description"`
	State       string          `yaml:"state" validate:"omitempty,oneof=framing evaluating decided"`
	Criteria    []criterionFile `yaml:"criteria" validate:"unique=ID,dive"`
	Tools       []toolFile      `yaml:"tools" validate:"unique=ID,dive"`
}

type criterionFile struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Weight      *int   `yaml:"weight" validate:"omitempty,min=1,max=5"`
}

type toolFile struct {
	ID          string         `yaml:"id" validate:"required"`
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Ratings     map[string]int `yaml:"ratings" validate:"dive,keys,required,endkeys,min=1,max=5"`
}

var fileValidator = validator.New()

// LoadFile reads and validates a YAML decision-space file.
func LoadFile(path string) (*Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	sp, err := ParseFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return sp, nil
}

// ParseFile decodes and validates a YAML decision space. Unknown fields
// are rejected. The returned space has no ID and is not persisted. Its
// history holds the system transitions that led to the requested state.
func ParseFile(data []byte) (*Space, error) {
	var f spaceFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing space file"), ErrInvalidInput)
	}
	if err := fileValidator.Struct(f); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid space file"), ErrInvalidInput)
	}

	sp := &Space{
		Name:        f.Name,
		Description: f.Description,
		State:       lifecycle.State(f.State),
		Criteria:    make([]scoring.Criterion, 0, len(f.Criteria)),
		Tools:       make([]scoring.Tool, 0, len(f.Tools)),
	}
	known := make(map[string]bool, len(f.Criteria))
	for _, cf := range f.Criteria {
		c := scoring.NewCriterion(cf.ID, cf.Name)
		c.Description = cf.Description
		if cf.Weight != nil {
			c.SetWeight(*cf.Weight)
		}
		known[c.ID] = true
		sp.Criteria = append(sp.Criteria, c)
	}

	for _, tf := range f.Tools {
		ratings := make(map[string]int, len(tf.Ratings))
		for cid, r := range tf.Ratings {
			if !known[cid] {
				return nil, errors.Wrapf(ErrInvalidInput, "tool %q rates unknown criterion %q", tf.ID, cid)
			}
			ratings[cid] = r
		}
		sp.Tools = append(sp.Tools, scoring.Tool{
			ID:          tf.ID,
			Name:        tf.Name,
			Description: tf.Description,
			Ratings:     ratings,
		})
	}
	if err := sp.settleState(); err != nil {
		return nil, err
	}
	return sp, nil
}
