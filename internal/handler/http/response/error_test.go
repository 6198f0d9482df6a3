package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
)

func handleAndDecode(t *testing.T, err error) (int, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var envelope Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec.Code, envelope
}

func TestHandleError_LocationErrorReportsDistance(t *testing.T) {
	code, envelope := handleAndDecode(t, &attendance.LocationError{DistanceMeters: 150.4})

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "150 meters away")
}

func TestHandleError_FaceMatchErrorReportsConfidence(t *testing.T) {
	code, envelope := handleAndDecode(t, &attendance.FaceMatchError{Confidence: 0.41})

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "confidence 0.41")
}

func TestHandleError_BareSentinelsStillMapped(t *testing.T) {
	code, _ := handleAndDecode(t, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = handleAndDecode(t, attendance.ErrLocationInvalid)
	assert.Equal(t, http.StatusBadRequest, code)
}
