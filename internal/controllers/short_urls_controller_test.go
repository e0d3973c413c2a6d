package controllers

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/linkqr/internal/controllers/mocksctrl"
	"github.com/fsdevblog/linkqr/internal/models"
	"github.com/fsdevblog/linkqr/internal/services"
)

const (
	testBaseURL = "http://test.com:8080"
	testQRCode  = "data:image/png;base64,iVBORw0KGgo="
)

type ShortURLControllerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	linkMock *mocksctrl.MockLinkShortener
	pingMock *mocksctrl.MockConnectionChecker
	router   *gin.Engine
}

func (s *ShortURLControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.linkMock = mocksctrl.NewMockLinkShortener(s.ctrl)
	s.pingMock = mocksctrl.NewMockConnectionChecker(s.ctrl)
	s.router = SetupRouter(RouterParams{
		LinkService: s.linkMock,
		PingService: s.pingMock,
	})
}

func shortenResult(shortID, originalURL string) *services.ShortenResult {
	return &services.ShortenResult{
		Link: &models.Link{
			ShortID:     shortID,
			ShortURL:    testBaseURL + "/" + shortID,
			OriginalURL: originalURL,
		},
		QRCode: testQRCode,
	}
}

func (s *ShortURLControllerSuite) TestIndex() {
	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/"})
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(res.Header.Get("Content-Type"), "text/html")
	s.Contains(string(body), `name="originalUrl"`)
	s.NotContains(string(body), "<img")
}

func (s *ShortURLControllerSuite) TestShorten() {
	validURL := "https://example.com/valid"
	shortID := "aB3_x-Z"

	s.linkMock.EXPECT().Create(gomock.Any(), validURL).
		Return(shortenResult(shortID, validURL), nil).
		Times(2)

	for _, gz := range []bool{false, true} {
		s.Run(fmt.Sprintf("gzip=%t", gz), func() {
			form := url.Values{"originalUrl": {validURL}}
			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/shorten",
				Body:        strings.NewReader(form.Encode()),
				ContentType: "application/x-www-form-urlencoded",
				Gzipped:     gz,
			})
			defer res.Body.Close()

			s.Equal(http.StatusOK, res.StatusCode)
			body, err := readBody(res.Body, gz)
			s.Require().NoError(err)
			s.Contains(string(body), testBaseURL+"/"+shortID)
			s.Contains(string(body), testQRCode)
			if gz {
				s.Equal("gzip", res.Header.Get("Content-Encoding"))
			}
		})
	}
}

func (s *ShortURLControllerSuite) TestShorten_Errors() {
	s.linkMock.EXPECT().Create(gomock.Any(), "").
		Return(nil, fmt.Errorf("%w: URL is required", services.ErrValidation))
	s.linkMock.EXPECT().Create(gomock.Any(), "https://dup.example.com").
		Return(nil, fmt.Errorf("%w: %s/abcdefg", services.ErrDuplicate, testBaseURL))
	s.linkMock.EXPECT().Create(gomock.Any(), "https://broken.example.com").
		Return(nil, fmt.Errorf("%w: connection refused", services.ErrStore))

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{name: "missing field", form: url.Values{}, wantStatus: http.StatusBadRequest, wantBody: "URL is required"},
		{
			name:       "duplicate",
			form:       url.Values{"originalUrl": {"https://dup.example.com"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Short URL already exists",
		},
		{
			name:       "store error",
			form:       url.Values{"originalUrl": {"https://broken.example.com"}},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Server error",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/shorten",
				Body:        strings.NewReader(tt.form.Encode()),
				ContentType: "application/x-www-form-urlencoded",
			})
			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)
			s.Equal(tt.wantStatus, res.StatusCode)
			s.Equal(tt.wantBody, string(body))
			s.Contains(res.Header.Get("Content-Type"), "text/plain")
		})
	}
}

func (s *ShortURLControllerSuite) TestAPIShorten() {
	validURL := "https://example.com/api"
	shortID := "ApI1234"

	s.linkMock.EXPECT().Create(gomock.Any(), validURL).Return(shortenResult(shortID, validURL), nil)
	s.linkMock.EXPECT().Create(gomock.Any(), "").
		Return(nil, fmt.Errorf("%w: URL is required", services.ErrValidation))

	s.Run("created", func() {
		res := s.makeRequest(requestFields{
			Method:      http.MethodPost,
			URL:         "/api/shorten",
			Body:        strings.NewReader(fmt.Sprintf(`{"originalUrl": %q}`, validURL)),
			ContentType: "application/json",
			Gzipped:     true,
		})
		defer res.Body.Close()

		s.Equal(http.StatusCreated, res.StatusCode)
		body, err := readBody(res.Body, true)
		s.Require().NoError(err)

		var got shortenResponse
		s.Require().NoError(json.Unmarshal(body, &got))
		s.Equal(shortenResponse{
			ShortID:     shortID,
			ShortURL:    testBaseURL + "/" + shortID,
			OriginalURL: validURL,
			QRCode:      testQRCode,
		}, got)
	})

	s.Run("empty url", func() {
		res := s.makeRequest(requestFields{
			Method:      http.MethodPost,
			URL:         "/api/shorten",
			Body:        strings.NewReader(`{}`),
			ContentType: "application/json",
		})
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		s.Equal(http.StatusBadRequest, res.StatusCode)
		s.JSONEq(`{"error":"URL is required"}`, string(body))
	})

	s.Run("broken json", func() {
		res := s.makeRequest(requestFields{
			Method:      http.MethodPost,
			URL:         "/api/shorten",
			Body:        strings.NewReader(`{"originalUrl":`),
			ContentType: "application/json",
		})
		defer res.Body.Close()
		s.Equal(http.StatusBadRequest, res.StatusCode)
	})

	s.Run("not json", func() {
		res := s.makeRequest(requestFields{
			Method:      http.MethodPost,
			URL:         "/api/shorten",
			Body:        strings.NewReader(validURL),
			ContentType: "text/plain",
		})
		defer res.Body.Close()
		s.Equal(http.StatusUnsupportedMediaType, res.StatusCode)
	})
}

func (s *ShortURLControllerSuite) TestRedirect() {
	validShortID := "1234567"
	notExistShortID := "7654321"
	brokenShortID := "broken1"
	redirectTo := "https://test.com/test/123"

	s.linkMock.EXPECT().GetByShortID(gomock.Any(), validShortID).
		Return(&models.Link{ShortID: validShortID, OriginalURL: redirectTo}, nil)
	s.linkMock.EXPECT().GetByShortID(gomock.Any(), notExistShortID).
		Return(nil, services.ErrNotFound)
	s.linkMock.EXPECT().GetByShortID(gomock.Any(), brokenShortID).
		Return(nil, services.ErrStore)

	tests := []struct {
		name       string
		requestURI string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", requestURI: validShortID, wantStatus: http.StatusFound},
		{name: "too long", requestURI: strings.Repeat("a", 33), wantStatus: http.StatusNotFound, wantBody: "URL not found"},
		{name: "bad alphabet", requestURI: "12345.7", wantStatus: http.StatusNotFound, wantBody: "URL not found"},
		{name: "not exist", requestURI: notExistShortID, wantStatus: http.StatusNotFound, wantBody: "URL not found"},
		{name: "store error", requestURI: brokenShortID, wantStatus: http.StatusInternalServerError, wantBody: "Server error"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method: http.MethodGet,
				URL:    "/" + tt.requestURI,
			})
			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)
			s.Equal(tt.wantStatus, res.StatusCode, "Answer:", string(body))
			if tt.wantStatus == http.StatusFound {
				s.Equal(redirectTo, res.Header.Get("Location"))
				return
			}
			s.Empty(res.Header.Get("Location"))
			s.Equal(tt.wantBody, string(body))
		})
	}
}

func (s *ShortURLControllerSuite) TestPing() {
	s.pingMock.EXPECT().CheckConnection(gomock.Any()).Return(nil)
	s.pingMock.EXPECT().CheckConnection(gomock.Any()).Return(errors.New("down"))

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("pong", string(body))

	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	res.Body.Close()
	s.Equal(http.StatusInternalServerError, res.StatusCode)
}

// Пустой ответ 500 не получает Content-Encoding, даже если клиент принимает gzip.
func (s *ShortURLControllerSuite) TestPing_FailureNoBodyWithGzip() {
	s.pingMock.EXPECT().CheckConnection(gomock.Any()).Return(errors.New("down"))

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping", Gzipped: true})
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	s.Equal(http.StatusInternalServerError, res.StatusCode)
	s.Empty(res.Header.Get("Content-Encoding"))
	s.Empty(body)
}

func (s *ShortURLControllerSuite) TestMetrics() {
	s.pingMock.EXPECT().CheckConnection(gomock.Any()).Return(nil)
	pingRes := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	pingRes.Body.Close()

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/debug/metrics"})
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(string(body), `http_requests_total{method="GET",route="/ping",status="200"} 1`)
}

func (s *ShortURLControllerSuite) TestRequestID() {
	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/"})
	defer res.Body.Close()
	s.Len(res.Header.Get("X-Request-ID"), 36)
}

func (s *ShortURLControllerSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/shorten", nil)
	req.Header.Set("Origin", "http://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type requestFields struct {
	Method      string
	URL         string
	Body        io.Reader
	ContentType string
	Gzipped     bool
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *ShortURLControllerSuite) makeRequest(fields requestFields) *http.Response {
	return makeRequest(s.T(), s.router, fields)
}

func makeRequest(t *testing.T, router http.Handler, fields requestFields) *http.Response {
	t.Helper()
	var body io.Reader
	if fields.Body != nil {
		body = fields.Body
	}

	// Добавляем gzip сжатие тела запроса, если надо.
	if fields.Gzipped && fields.Body != nil {
		var gzipBuffer bytes.Buffer
		gzipW, gzErr := gzip.NewWriterLevel(&gzipBuffer, gzip.BestSpeed)
		if gzErr != nil {
			t.Fatalf("failed to create gzip writer: %v", gzErr)
		}

		if _, copyErr := io.Copy(gzipW, fields.Body); copyErr != nil {
			t.Fatalf("failed to copy request body to gzip writer: %v", copyErr)
		}

		if err := gzipW.Close(); err != nil {
			t.Fatalf("failed to close gzip writer: %v", err)
		}
		body = &gzipBuffer
	}

	request := httptest.NewRequest(fields.Method, fields.URL, body)
	if fields.ContentType != "" {
		request.Header.Set("Content-Type", fields.ContentType)
	}
	if fields.Gzipped {
		request.Header.Set("Content-Encoding", "gzip")
		request.Header.Set("Accept-Encoding", "gzip")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder.Result()
}

func TestShortURLControllerSuite(t *testing.T) {
	suite.Run(t, new(ShortURLControllerSuite))
}

func unGzip(r io.Reader) ([]byte, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()

	return io.ReadAll(gzr)
}

// readBody Читает тело ответа, если тело сжатое - расжимает.
func readBody(r io.Reader, compressed bool) ([]byte, error) {
	if compressed {
		return unGzip(r)
	}
	return io.ReadAll(r)
}
