package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShareCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		errMsg  string
		wantErr bool
	}{
		{name: "letters and digits", code: "AB12CD34"},
		{name: "only digits", code: "12345678"},
		{name: "empty", code: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", code: "ABC", wantErr: true, errMsg: "must be 8 characters"},
		{name: "too long", code: "ABCDEFGHI", wantErr: true, errMsg: "must be 8 characters"},
		{name: "lowercase", code: "abcd1234", wantErr: true, errMsg: "can only contain"},
		{name: "symbols", code: "ABCD-123", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShareCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNormalizeShareCode(t *testing.T) {
	assert.Equal(t, "AB12CD34", NormalizeShareCode("  ab12cd34\n"))
	require.NoError(t, ValidateShareCode(NormalizeShareCode(" xk7p2m9q ")))
}
