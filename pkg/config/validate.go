package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report problems with the same keys users write in their files.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns an
// [errors.ConfigurationError] listing every problem, or nil.
//
// Struct-level rules (required ids, non-negative capacities, the shuffle mode
// enum, at least one drag item) come from validator tags; identifier syntax,
// uniqueness across items and areas, and group names are checked here.
func (c *Config) Validate() error {
	var ce errors.ConfigurationError

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				ce.Add(fieldPath(fe), "%s", describeFieldError(fe))
			}
		} else {
			ce.Add("", "%v", err)
		}
	}

	if c.FeedbackDelay.Duration < 0 {
		ce.Add("feedbackDelay", "must not be negative")
	}

	seen := make(map[string]string, len(c.DragItems)+len(c.DropAreas))
	checkID := func(field, id string) {
		if id == "" {
			return // reported by the required tag
		}
		if err := errors.ValidateID(id); err != nil {
			ce.Add(field, "%s", errors.UserMessage(err))
			return
		}
		if prev, dup := seen[id]; dup {
			ce.Add(field, "duplicate id %q (first used by %s)", id, prev)
			return
		}
		seen[id] = field
	}
	checkGroups := func(field string, groups []string) {
		for j, g := range groups {
			if err := errors.ValidateGroup(g); err != nil {
				ce.Add(indexed(field, j), "%s", errors.UserMessage(err))
			}
		}
	}

	for i, it := range c.DragItems {
		base := indexed("dragItems", i)
		checkID(base+".id", it.ID)
		checkGroups(base+".groups", it.Groups)
	}
	for i, a := range c.DropAreas {
		base := indexed("dropAreas", i)
		checkID(base+".id", a.ID)
		checkGroups(base+".accept", a.Accept)
	}

	return ce.Err()
}

// fieldPath turns "Config.dropAreas[1].maxCapacity" into
// "dropAreas[1].maxCapacity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " entry"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}
