package progress

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/models"
)

var (
	ErrEmptyValue    = stderrors.New("value is empty")
	ErrInvalidNumber = stderrors.New("value is not a number")
)

// ParseValue parses a decimal typed by a trainer. Either "," or "." is
// accepted as the decimal separator and surrounding spaces are ignored.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// FormatValue renders v for an input field using a comma separator.
func FormatValue(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

// ValidateValues parses inputs for every template row. Inputs for ids outside
// the template are ignored. On failure the returned FieldErrors holds one
// reason per failing metric and the parsed map is nil.
func ValidateValues(template models.MetricTemplate, inputs map[string]string) (map[string]float64, errors.FieldErrors) {
	parsed := make(map[string]float64, len(template.Rows))
	fieldErrs := errors.FieldErrors{}

	for _, row := range template.Rows {
		raw, ok := inputs[row.ID]
		if !ok {
			fieldErrs[row.ID] = errors.ReasonRequiredField
			continue
		}
		v, err := ParseValue(raw)
		switch {
		case stderrors.Is(err, ErrEmptyValue):
			fieldErrs[row.ID] = errors.ReasonRequiredField
		case err != nil:
			fieldErrs[row.ID] = errors.ReasonInvalidNumber
		default:
			parsed[row.ID] = v
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return parsed, nil
}
