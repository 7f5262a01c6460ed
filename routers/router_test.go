package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studybyte/certificate"
	"studybyte/config"
	"studybyte/logger"
	"studybyte/middleware"
	"studybyte/models"
	"studybyte/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWTKey:         testSecret,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		CertificateDir: t.TempDir(),
		CertificateURL: "/certificates",
		IssuerName:     "Study Byte",
		SupportEmail:   "support@studybyte.com",
	}
	db := testutil.OpenDB(t)
	log := logger.NewNop()
	return &testServer{app: NewApp(cfg, db, NewIssuer(cfg, db, log), log), db: db}
}

func token(t *testing.T, user *models.User) string {
	t.Helper()
	tok, err := middleware.GenerateJWT(testSecret, user.ID, user.FullName(), user.Role, user.Email)
	require.NoError(t, err)
	return tok
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *testServer) do(t *testing.T, method, target, tok, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func (s *testServer) doJSON(t *testing.T, method, target, tok, body string) (int, envelope) {
	t.Helper()
	resp, raw := s.do(t, method, target, tok, body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

type issued struct {
	Certificate struct {
		ID                uint   `json:"ID"`
		CertificateNumber string `json:"certificate_number"`
		Status            string `json:"status"`
	} `json:"certificate"`
	PDFPath string `json:"pdfPath"`
}

func generateBody(courseID uint) string {
	return fmt.Sprintf(`{"courseId": %d}`, courseID)
}

func TestCertificateLifecycle(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	course, items := testutil.SeedCourse(t, s.db, "Analytical Engines", nil, 2)
	tok := token(t, learner)

	status, env := s.doJSON(t, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), tok, "")
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = s.doJSON(t, "POST", fmt.Sprintf("/course/%d/content/%d/complete", course.ID, items[0]), tok, "")
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Course not completed yet", env.Message)

	status, _ = s.doJSON(t, "POST", fmt.Sprintf("/course/%d/content/%d/complete", course.ID, items[1]), tok, "")
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.True(t, env.Success)
	assert.Equal(t, "Certificate generated successfully", env.Message)
	var first issued
	require.NoError(t, json.Unmarshal(env.Data, &first))
	number := first.Certificate.CertificateNumber
	assert.True(t, certificate.ValidNumber(number), number)
	assert.Equal(t, "/certificates/"+number+".pdf", first.PDFPath)

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Certificate already exists", env.Message)
	var second issued
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, number, second.Certificate.CertificateNumber)
	assert.Equal(t, first.PDFPath, second.PDFPath)

	resp, body := s.do(t, "GET", fmt.Sprintf("/certificate/%d", course.ID), tok, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Certificate-"+number+".pdf", resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	resp, static := s.do(t, "GET", first.PDFPath, "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, body, static)

	status, env = s.doJSON(t, "GET", "/user/certificates", tok, "")
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Certificates []struct {
			CertificateNumber string `json:"certificate_number"`
			CourseName        string `json:"course_name"`
		} `json:"certificates"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Analytical Engines", list.Certificates[0].CourseName)

	status, env = s.doJSON(t, "GET", "/certificate/verify/"+number, "", "")
	require.Equal(t, fiber.StatusOK, status)
	var v certificate.Verification
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "Ada Lovelace", v.LearnerName)
	assert.Equal(t, "active", v.Status)

	resp, png := s.do(t, "GET", fmt.Sprintf("/certificate/%d/preview", course.ID), tok, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	status, env = s.doJSON(t, "GET", fmt.Sprintf("/course/%d/progress", course.ID), tok, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"course_id":%d,"completed_items":2,"total_items":2,"percentage":100,"is_completed":true}`, course.ID), string(env.Data))

	resp, metricsBody := s.do(t, "GET", "/metrics", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(metricsBody), `certificate_issuance_requests_total{outcome="created"}`)
}

func TestGenerateRejections(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	tok := token(t, learner)

	status, env := s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(999))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Course not found or user not enrolled", env.Message)

	course, _ := testutil.SeedCourse(t, s.db, "Analytical Engines", nil, 1)
	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Course not found or user not enrolled", env.Message)

	testutil.Enroll(t, s.db, learner.ID, course.ID)
	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Course progress not found", env.Message)

	status, env = s.doJSON(t, "GET", fmt.Sprintf("/certificate/%d", course.ID), tok, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Certificate not found", env.Message)

	var count int64
	require.NoError(t, s.db.Table("certificates").Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	tok := token(t, learner)

	status, env := s.doJSON(t, "POST", "/certificate/generate", tok, `{}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"courseId":"courseId is required!"}`, string(env.Data))

	status, _ = s.doJSON(t, "POST", "/certificate/generate", tok, `{"courseId": "abc"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, `{"courseId": "0"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"courseId":"courseId is required!"}`, string(env.Data))

	status, env = s.doJSON(t, "GET", "/certificate/abc", tok, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid Course ID!", env.Message)

	status, env = s.doJSON(t, "GET", "/certificate/verify/not-a-number", "", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"number":"Invalid certificate number!"}`, string(env.Data))

	status, _ = s.doJSON(t, "POST", "/course/0/enroll", tok, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGenerateAcceptsStringCourseID(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	course, items := testutil.SeedCourse(t, s.db, "Analytical Engines", nil, 1)
	testutil.Enroll(t, s.db, learner.ID, course.ID)
	testutil.Complete(t, s.db, learner.ID, course.ID, items...)
	tok := token(t, learner)

	status, env := s.doJSON(t, "POST", "/certificate/generate", tok, fmt.Sprintf(`{"courseId": "%d"}`, course.ID))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var fromString issued
	require.NoError(t, json.Unmarshal(env.Data, &fromString))

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var fromNumber issued
	require.NoError(t, json.Unmarshal(env.Data, &fromNumber))
	assert.Equal(t, fromString.Certificate.CertificateNumber, fromNumber.Certificate.CertificateNumber)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	instructor := testutil.SeedUser(t, s.db, "Charles", "Babbage", "charles@example.com")
	instructor.Role = models.RoleInstructor

	status, env := s.doJSON(t, "POST", "/certificate/generate", "", generateBody(1))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = s.doJSON(t, "POST", "/certificate/generate", "garbage", generateBody(1))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.doJSON(t, "POST", "/certificate/generate", token(t, instructor), generateBody(1))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRevokeCertificate(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	admin := testutil.SeedUser(t, s.db, "Grace", "Hopper", "grace@example.com")
	admin.Role = models.RoleAdmin
	course, items := testutil.SeedCourse(t, s.db, "Analytical Engines", nil, 1)
	testutil.Enroll(t, s.db, learner.ID, course.ID)
	testutil.Complete(t, s.db, learner.ID, course.ID, items...)
	tok := token(t, learner)

	status, env := s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	require.Equal(t, fiber.StatusOK, status)
	var got issued
	require.NoError(t, json.Unmarshal(env.Data, &got))
	revokeURL := "/admin/certificate/" + got.Certificate.CertificateNumber + "/revoke"

	status, _ = s.doJSON(t, "POST", revokeURL, tok, "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.doJSON(t, "POST", "/admin/certificate/CERT-1-999/revoke", token(t, admin), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = s.doJSON(t, "POST", revokeURL, token(t, admin), "")
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = s.doJSON(t, "POST", "/certificate/generate", tok, generateBody(course.ID))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Certificate has been revoked", env.Message)

	status, env = s.doJSON(t, "GET", "/certificate/verify/"+got.Certificate.CertificateNumber, "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"revoked"`)
}

func TestRevokeWithGrantedPermission(t *testing.T) {
	s := newTestServer(t)
	staff := testutil.SeedUser(t, s.db, "Alan", "Turing", "alan@example.com")
	require.NoError(t, s.db.Create(&models.Permission{UserID: staff.ID, Permission: models.PermissionRevokeCertificate}).Error)

	status, env := s.doJSON(t, "POST", "/admin/certificate/CERT-1-999/revoke", token(t, staff), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Certificate not found", env.Message)
}

func TestProgressEndpointsRejectDuplicates(t *testing.T) {
	s := newTestServer(t)
	learner := testutil.SeedUser(t, s.db, "Ada", "Lovelace", "ada@example.com")
	course, items := testutil.SeedCourse(t, s.db, "Analytical Engines", nil, 2)
	tok := token(t, learner)

	status, _ := s.doJSON(t, "POST", fmt.Sprintf("/course/%d/content/%d/complete", course.ID, items[0]), tok, "")
	assert.Equal(t, fiber.StatusForbidden, status, "not enrolled")

	enroll := fmt.Sprintf("/course/%d/enroll", course.ID)
	status, _ = s.doJSON(t, "POST", enroll, tok, "")
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.doJSON(t, "POST", enroll, tok, "")
	assert.Equal(t, fiber.StatusConflict, status)

	complete := fmt.Sprintf("/course/%d/content/%d/complete", course.ID, items[0])
	status, env := s.doJSON(t, "POST", complete, tok, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"completed_items":1`)
	status, _ = s.doJSON(t, "POST", complete, tok, "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = s.doJSON(t, "POST", fmt.Sprintf("/course/%d/content/%d/complete", course.ID, 9999), tok, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, env := s.doJSON(t, "GET", "/health", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	s := newTestServer(t)

	status, env := s.doJSON(t, "GET", "/nope", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}
