package httpjson_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))
		var p payload
		if err := httpjson.Decode(httptest.NewRecorder(), req, &p); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if p.Name != "ok" {
			t.Errorf("name: got %q", p.Name)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
		var p payload
		err := httpjson.Decode(httptest.NewRecorder(), req, &p)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("kind: got %v, want validation", apperr.KindOf(err))
		}
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
		var p payload
		err := httpjson.Decode(httptest.NewRecorder(), req, &p)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("kind: got %v, want validation", apperr.KindOf(err))
		}
	})
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("no"), http.StatusUnauthorized},
		{apperr.Forbidden("nope"), http.StatusForbidden},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Conflict("full"), http.StatusConflict},
		{apperr.Duplicate("again"), http.StatusConflict},
		{apperr.Server("boom", nil), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := httpjson.StatusOf(tc.err); got != tc.want {
			t.Errorf("StatusOf(%v): got %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, apperr.Validation("Invalid group data.",
		apperr.FieldError{Field: "name", Message: "Group name must be between 3 and 50 characters"},
	), zap.NewNop())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body.Message != "Invalid group data." {
		t.Errorf("message: got %q", body.Message)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "name" {
		t.Errorf("errors: got %+v", body.Errors)
	}
}

func TestErrorHidesServerCause(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, apperr.Server("Server error while joining group.", errors.New("connection reset by peer")), zap.NewNop())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Errorf("cause leaked to client: %s", rec.Body.String())
	}
}
