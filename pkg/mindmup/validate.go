package mindmup

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// docValidate checks the structure of wire documents before decoding.
var docValidate *validator.Validate

func init() {
	docValidate = validator.New()
	docValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = docValidate.RegisterValidation("rank", validateRank)
}

// validateRank accepts child map keys that parse as finite numbers. MindMup
// uses negative and fractional ranks for ideas placed left of the root or
// inserted between siblings.
func validateRank(fl validator.FieldLevel) bool {
	_, ok := parseRank(fl.Field().String())
	return ok
}

// parseRank parses a child map key. NaN and infinities have no place in a
// sibling order and are rejected.
func parseRank(key string) (float64, bool) {
	pos, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsNaN(pos) || math.IsInf(pos, 0) {
		return 0, false
	}
	return pos, true
}

// Validate reports structural problems of a wire document: non-positive ids,
// non-numeric ranks, null children and links with non-positive endpoints.
// The returned error wraps ErrInvalidDocument.
func Validate(doc *Idea) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if err := docValidate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
	}
	return strings.Join(msgs, "; ")
}
