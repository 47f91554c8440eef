package types

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// CheckValue is a tri-state flag used for the STOP mitigation columns of a
// hazard. Unset is distinct from false: it means nobody has assessed the
// measure yet.
type CheckValue string

const (
	CheckUnset CheckValue = ""
	CheckTrue  CheckValue = "true"
	CheckFalse CheckValue = "false"
)

// Check converts a bool into a CheckValue.
func Check(v bool) CheckValue {
	if v {
		return CheckTrue
	}
	return CheckFalse
}

func (c CheckValue) IsValid() bool {
	return c == CheckUnset || c == CheckTrue || c == CheckFalse
}

func (c CheckValue) Bool() bool {
	return c == CheckTrue
}

// MarshalJSON encodes unset as null and the other states as booleans.
func (c CheckValue) MarshalJSON() ([]byte, error) {
	switch c {
	case CheckTrue:
		return []byte("true"), nil
	case CheckFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (c *CheckValue) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return goerr.Wrap(err, "check value must be a boolean or null", goerr.V("value", string(data)))
	}
	if v == nil {
		*c = CheckUnset
		return nil
	}
	*c = Check(*v)
	return nil
}
