package http

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

const dateLayout = "2006-01-02"

var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New(validator.WithRequiredStructEnabled())

	// report JSON names in validation errors
	requestValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = requestValidate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return types.Role(fl.Field().String()).IsValid()
	})
	_ = requestValidate.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return types.Season(fl.Field().String()).IsValid()
	})
	_ = requestValidate.RegisterValidation("template_season", func(fl validator.FieldLevel) bool {
		return types.Season(fl.Field().String()).IsValidForTemplate()
	})
	_ = requestValidate.RegisterValidation("indoor_outdoor", func(fl validator.FieldLevel) bool {
		return types.IndoorOutdoor(fl.Field().String()).IsValid()
	})
	_ = requestValidate.RegisterValidation("template_indoor_outdoor", func(fl validator.FieldLevel) bool {
		return types.IndoorOutdoor(fl.Field().String()).IsValidForTemplate()
	})
	_ = requestValidate.RegisterValidation("project_status", func(fl validator.FieldLevel) bool {
		return types.ProjectStatus(fl.Field().String()).IsValid()
	})
}

// validateRequest turns validator failures into ErrInvalidInput naming the
// offending fields
func validateRequest(v any) error {
	err := requestValidate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + ":" + fe.Tag()
		}
		return goerr.Wrap(usecase.ErrInvalidInput, "request validation failed: "+strings.Join(fields, ", "),
			goerr.V(usecase.FieldKey, fields))
	}
	return goerr.Wrap(err, "failed to validate request")
}

// parseDate accepts YYYY-MM-DD; empty means unset
func parseDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, goerr.Wrap(usecase.ErrInvalidInput, "date must be YYYY-MM-DD", goerr.V(usecase.FieldKey, field))
	}
	return &t, nil
}
