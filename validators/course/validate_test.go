package courseValidator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	for _, body := range []string{`{"courseId": 12}`, `{"courseId": "12"}`, `{"courseId": " 12 "}`} {
		var req generateCertificateRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, flexibleID(12), req.CourseID, body)
		assert.NoError(t, validate.Struct(&req), body)
	}

	for _, body := range []string{`{"courseId": "abc"}`, `{"courseId": -3}`, `{"courseId": "1.5"}`, `{"courseId": true}`} {
		var req generateCertificateRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}

	var req generateCertificateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"courseId": null}`), &req))
	assert.Error(t, validate.Struct(&req))
}
