package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, ErrCodeQuestionNotFound, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 404, body["error"])
	assert.Equal(t, MessageNotFound, body["message"])
	assert.Equal(t, ErrCodeQuestionNotFound, body["code"])
}

func TestDefaultMessages(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          MessageBadRequest,
		http.StatusNotFound:            MessageNotFound,
		http.StatusUnprocessableEntity: MessageUnprocessable,
		http.StatusMethodNotAllowed:    "Method Not Allowed",
	}
	for status, want := range cases {
		got := NewErrorResponse(status, "", "")
		assert.Equal(t, want, got.Message, "status %d", status)
		assert.Equal(t, status, got.Error)
		assert.False(t, got.Success)
	}
}

func TestCustomMessageWins(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUnprocessable(rec, ErrCodeValidationFailed, "difficulty must be between 1 and 5")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnprocessableEntity, body.Error)
	assert.Equal(t, "difficulty must be between 1 and 5", body.Message)
}
