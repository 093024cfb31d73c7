package scoring

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateCriterion checks a criterion before it is persisted.
// Scoring itself never needs this: out-of-range data degrades to defaults.
func ValidateCriterion(c Criterion) error {
	if err := getValidator().Struct(c); err != nil {
		return errors.Wrapf(err, "invalid criterion %q", c.ID)
	}
	return nil
}

// ValidateTool checks a tool and its ratings before it is persisted.
func ValidateTool(t Tool) error {
	if err := getValidator().Struct(t); err != nil {
		return errors.Wrapf(err, "invalid tool %q", t.ID)
	}
	return nil
}

// ValidateRating checks a single 1-5 value, used for both weights and
// ratings.
func ValidateRating(v int) error {
	if err := getValidator().Var(v, "min=1,max=5"); err != nil {
		return errors.Newf("rating %d is outside %d-%d", v, MinRating, MaxRating)
	}
	return nil
}
