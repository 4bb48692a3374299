package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/http/handlers"
	"github.com/Shuaibullattil/daily-motivation/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type validationResponse struct {
	Detail []handlers.FieldError `json:"detail"`
	Code   string                `json:"code"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/create_user", func(ctx *gin.Context) {
		var req profile.CreateProfileRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusOK)
	})
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeValidation(t *testing.T, w *httptest.ResponseRecorder) validationResponse {
	t.Helper()
	var resp validationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestBindJSON_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	w := postJSON(bindRouter(), "/create_user", `{"name":"A"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusUnprocessableEntity, w.Body.String())
	}

	resp := decodeValidation(t, w)
	if resp.Code != "validation_error" {
		t.Fatalf("unexpected code: %s", resp.Code)
	}

	found := map[string]handlers.FieldError{}
	for _, fe := range resp.Detail {
		found[strings.Join(fe.Loc, ".")] = fe
	}

	for _, loc := range []string{"body.role", "body.about"} {
		fe, ok := found[loc]
		if !ok {
			t.Fatalf("missing field error for %q: %+v", loc, resp.Detail)
		}
		if fe.Type != "required" || fe.Msg == "" {
			t.Fatalf("field %q: %+v", loc, fe)
		}
	}
}

func TestBindJSON_TypeMismatchUsesJSONPath(t *testing.T) {
	body := `{"name":"A","role":"R","about":{"background":5}}`
	w := postJSON(bindRouter(), "/create_user", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeValidation(t, w)
	if len(resp.Detail) != 1 {
		t.Fatalf("detail = %+v", resp.Detail)
	}
	fe := resp.Detail[0]
	if !reflect.DeepEqual(fe.Loc, []string{"body", "about", "background"}) {
		t.Fatalf("loc = %v", fe.Loc)
	}
	if fe.Type != "type" {
		t.Fatalf("type = %q", fe.Type)
	}
}

func TestBindJSON_BadSyntaxAndEmptyBody(t *testing.T) {
	tests := []struct {
		body     string
		wantType string
	}{
		{`{"name":`, "json_invalid"},
		{`{"name" "A"}`, "json_invalid"},
		{``, "missing"},
	}

	for _, tt := range tests {
		w := postJSON(bindRouter(), "/create_user", tt.body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %q: got status %d", tt.body, w.Code)
		}
		resp := decodeValidation(t, w)
		if len(resp.Detail) == 0 || resp.Detail[0].Type != tt.wantType {
			t.Fatalf("body %q: detail = %+v, want type %s", tt.body, resp.Detail, tt.wantType)
		}
	}
}

func TestBindJSON_BodyTooLarge(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(16))
	r.POST("/create_user", func(ctx *gin.Context) {
		var req profile.CreateProfileRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusOK)
	})

	w := postJSON(r, "/create_user", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got status %d, want 413, body=%s", w.Code, w.Body.String())
	}
}

func TestBindJSON_AboutKeysRequired(t *testing.T) {
	w := postJSON(bindRouter(), "/create_user", `{"name":"A","role":"R","about":{"dreams":"d"}}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422, body=%s", w.Code, w.Body.String())
	}

	resp := decodeValidation(t, w)
	got := map[string]string{}
	for _, fe := range resp.Detail {
		got[strings.Join(fe.Loc, ".")] = fe.Type
	}

	want := map[string]string{
		"body.about.background": "required",
		"body.about.challenges": "required",
		"body.about.values":     "required",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("detail = %v, want %v", got, want)
	}
}

func TestBindJSON_EmptyStringsAccepted(t *testing.T) {
	body := `{"name":"","role":"","about":{"background":"","dreams":"","challenges":"","values":""}}`
	if w := postJSON(bindRouter(), "/create_user", body); w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}
}
