package types_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func TestCheckValueJSON(t *testing.T) {
	type holder struct {
		S types.CheckValue `json:"s"`
		T types.CheckValue `json:"t"`
		O types.CheckValue `json:"o"`
	}

	data, err := json.Marshal(holder{S: types.CheckTrue, T: types.CheckFalse})
	gt.NoError(t, err).Required()
	gt.Value(t, string(data)).Equal(`{"s":true,"t":false,"o":null}`)

	var h holder
	gt.NoError(t, json.Unmarshal([]byte(`{"s":false,"t":null,"o":true}`), &h)).Required()
	gt.Value(t, h.S).Equal(types.CheckFalse)
	gt.Value(t, h.T).Equal(types.CheckUnset)
	gt.Value(t, h.O).Equal(types.CheckTrue)

	gt.Error(t, json.Unmarshal([]byte(`{"s":"WAHR"}`), &h))
}
