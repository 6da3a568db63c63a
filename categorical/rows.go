package categorical

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pivolan/variable_plots/domain/models"
)

// categoryOf reads the categorical value of a row. Nil and empty-string
// values are recoded to models.MissingCategory. Both aggregators go
// through here, so the recoding rule cannot drift between them.
func categoryOf(row map[string]interface{}, field string, idx int) (string, error) {
	v, ok := row[field]
	if !ok {
		return "", errors.Wrapf(ErrInvalidInput, "row %d: no field %q", idx, field)
	}
	if v == nil {
		return models.MissingCategory, nil
	}
	s := fmt.Sprintf("%v", v)
	if s == "" {
		return models.MissingCategory, nil
	}
	return s, nil
}

// periodOf reads the time-period label of a row. Labels are expected to
// be already truncated by the loader; any value is stringified as-is.
func periodOf(row map[string]interface{}, field string, idx int) (string, error) {
	v, ok := row[field]
	if !ok {
		return "", errors.Wrapf(ErrInvalidInput, "row %d: no field %q", idx, field)
	}
	return fmt.Sprintf("%v", v), nil
}

// weightOf reads the row weight. An empty field name means unweighted
// input, weight 1 per row.
func weightOf(row map[string]interface{}, field string, idx int) (float64, error) {
	if field == "" {
		return 1, nil
	}
	v, ok := row[field]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidInput, "row %d: no field %q", idx, field)
	}
	var w float64
	switch value := v.(type) {
	case float64:
		w = value
	case float32:
		w = float64(value)
	case int:
		w = float64(value)
	case int32:
		w = float64(value)
	case int64:
		w = float64(value)
	case uint64:
		w = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidInput, "row %d: weight %q is not numeric", idx, value)
		}
		w = parsed
	default:
		return 0, errors.Wrapf(ErrInvalidInput, "row %d: weight %v is not numeric", idx, v)
	}
	if w < 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "row %d: negative weight %v", idx, w)
	}
	return w, nil
}
