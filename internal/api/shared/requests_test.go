package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	WordIDs []string `json:"word_ids" validate:"required,min=1,dive,uuid"`
}

func TestDecodeAndValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		body       string
		wantErr    error
		wantFields bool
	}{
		{name: "valid", body: `{"word_ids":["5f0c3c9e-8a53-4c1c-9b62-7e1e3c2f9a10"]}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "missing field", body: `{}`, wantFields: true},
		{name: "empty list", body: `{"word_ids":[]}`, wantFields: true},
		{name: "bad uuid", body: `{"word_ids":["nope"]}`, wantFields: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var got sampleRequest
			err := DecodeAndValidate(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.wantFields:
				var vErrs validator.ValidationErrors
				assert.True(t, errors.As(err, &vErrs), "got %v", err)
			default:
				assert.NoError(t, err)
				assert.Len(t, got.WordIDs, 1)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	// Clients still send the per-word answers with a learn completion.
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"word_ids":["a"],"answers":[]}`))
	var got sampleRequest
	assert.NoError(t, DecodeJSON(req, &got))
	assert.Equal(t, []string{"a"}, got.WordIDs)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"word_ids":[`))
	assert.Error(t, DecodeJSON(req, &got))
}

func TestValidateRequest_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(&sampleRequest{})
	var vErrs validator.ValidationErrors
	if assert.True(t, errors.As(err, &vErrs)) {
		assert.Equal(t, "word_ids", vErrs[0].Field())
		assert.Equal(t, "required", vErrs[0].Tag())
	}
}
