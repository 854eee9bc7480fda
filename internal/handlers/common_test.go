package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("%w: 5", services.ErrUserNotFound), want: http.StatusNotFound},
		{name: "phone taken", err: services.ErrPhoneTaken, want: http.StatusConflict},
		{name: "bad credentials", err: services.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "bad token", err: services.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "self match", err: services.ErrSelfMatch, want: http.StatusBadRequest},
		{name: "unknown gift", err: services.ErrUnknownGift, want: http.StatusBadRequest},
		{name: "unsupported image", err: services.ErrUnsupportedImage, want: http.StatusBadRequest},
		{name: "anything else", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() got = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRespondServiceError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("dial tcp 10.0.0.5:5432: refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status got = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestDecodeForm(t *testing.T) {
	urlencoded := func(v url.Values) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(v.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	tests := []struct {
		name    string
		req     *http.Request
		want    LoginRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  urlencoded(url.Values{"phone": {"1111"}, "password": {"pw"}, "extra": {"ignored"}}),
			want: LoginRequest{Phone: "1111", Password: "pw"},
		},
		{
			name:    "missing password",
			req:     urlencoded(url.Values{"phone": {"1111"}}),
			wantErr: "password is required",
		},
		{
			name:    "empty body",
			req:     urlencoded(url.Values{}),
			wantErr: "phone is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LoginRequest
			err := decodeForm(tt.req, &got)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("decodeForm() error got = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeForm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeForm() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeForm_BirthDate(t *testing.T) {
	for _, tt := range []struct {
		date    string
		wantErr bool
	}{
		{date: "", wantErr: false},
		{date: "2000-05-10", wantErr: false},
		{date: "10/05/2000", wantErr: true},
	} {
		t.Run(tt.date, func(t *testing.T) {
			v := url.Values{
				"name": {"Alice"}, "phone": {"1111"}, "gender": {"F"}, "interest": {"M"},
				"password": {"pw"}, "birth_date": {tt.date},
			}
			r := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(v.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			var req RegisterRequest
			err := decodeForm(r, &req)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeForm() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormUpload(t *testing.T) {
	t.Run("file present", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		w.WriteField("content", "hi")
		part, _ := w.CreateFormFile("image", "pic.jpg")
		part.Write([]byte("jpg-bytes"))
		w.Close()

		r := httptest.NewRequest(http.MethodPost, "/api/v1/chat/2", &buf)
		r.Header.Set("Content-Type", w.FormDataContentType())

		upload, file, err := formUpload(r, "image")
		if err != nil {
			t.Fatalf("formUpload() error = %v", err)
		}
		defer file.Close()

		if upload.Filename != "pic.jpg" {
			t.Errorf("filename got = %q", upload.Filename)
		}
		if data, _ := io.ReadAll(upload.Body); string(data) != "jpg-bytes" {
			t.Errorf("body got = %q", data)
		}
	})

	t.Run("not multipart", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/chat/2", strings.NewReader("content=hi"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		upload, file, err := formUpload(r, "image")
		if err != nil || upload != nil || file != nil {
			t.Errorf("formUpload() got = %v, %v, %v, want nil upload", upload, file, err)
		}
	})
}

func TestUserIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("user_id", tt.raw)
			r := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+tt.raw, nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := userIDParam(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("userIDParam() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("userIDParam() got = %d, want %d", got, tt.want)
			}
		})
	}
}
