package model_test

import (
	"encoding/json"
	"testing"

	"ecadmin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantRef  string
		wantType string
	}{
		{name: "string", in: `"x.png"`, wantRef: "x.png"},
		{name: "reference", in: `{"_ref":"prod-1","_type":"reference"}`, wantRef: "prod-1", wantType: "reference"},
		{name: "image_asset", in: `{"_type":"image","asset":{"_ref":"image-abc-png"}}`, wantRef: "image-abc-png", wantType: "image"},
		{name: "null", in: `null`},
		{name: "number", in: `12`},
		{name: "odd_object", in: `{"_ref":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r model.Reference
			require.NoError(t, json.Unmarshal([]byte(tt.in), &r))
			assert.Equal(t, tt.wantRef, r.Ref)
			assert.Equal(t, tt.wantType, r.Type)
		})
	}
}

func TestReference_MarshalJSON(t *testing.T) {
	var r model.Reference
	require.NoError(t, json.Unmarshal([]byte(`{"_type":"image","asset":{"_ref":"a1"}}`), &r))
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_type":"image","asset":{"_ref":"a1"}}`, string(b))

	b, err = json.Marshal(model.Reference{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(model.Reference{Ref: "prod-1", Type: "reference"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_ref":"prod-1","_type":"reference"}`, string(b))
}
