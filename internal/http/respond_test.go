package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/client"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
)

func renderToRecorder(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	renderError(c, err)
	return w
}

type errDetailBody struct {
	Err struct {
		Type   string `json:"type"`
		Code   int    `json:"code"`
		Msg    string `json:"msg"`
		RawMsg string `json:"raw_msg"`
	} `json:"Err"`
}

func TestRenderErrorNotFound(t *testing.T) {
	w := renderToRecorder(t, repository.ErrNotFound)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var body errDetailBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Err.Type != "db" || body.Err.Code != 404 || body.Err.Msg != "Record not found" {
		t.Errorf("body = %+v", body.Err)
	}
}

func TestRenderErrorUnexpectedDB(t *testing.T) {
	w := renderToRecorder(t, fmt.Errorf("query nodes: %w", errors.New("connection reset")))

	var body errDetailBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Err.Type != "db" || body.Err.Code != 500 || body.Err.Msg != "Unexpected Error" {
		t.Errorf("body = %+v", body.Err)
	}
}

func TestRenderErrorTransport(t *testing.T) {
	w := renderToRecorder(t, &client.TransportError{Code: 111, Msg: "connection refused", Raw: "dial tcp: refused"})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	var body errDetailBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Err.Type != "req" || body.Err.Code != 111 || body.Err.Msg != "connection refused" {
		t.Errorf("body = %+v", body.Err)
	}
	if body.Err.RawMsg != "dial tcp: refused" {
		t.Errorf("raw_msg = %q", body.Err.RawMsg)
	}
}

func TestRenderErrorNodePassthrough(t *testing.T) {
	w := renderToRecorder(t, &client.NodeError{Payload: json.RawMessage(`"UserAlreadyExists"`)})

	var body struct {
		Err string `json:"Err"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Err != "UserAlreadyExists" {
		t.Errorf("Err = %q, node payload must pass through untouched", body.Err)
	}
}

func TestRenderErrorAddrValidation(t *testing.T) {
	for _, addrErr := range []error{client.ErrAddrNotURL, client.ErrAddrBadScheme} {
		w := renderToRecorder(t, addrErr)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}

		var body struct {
			Err struct {
				Msg string `json:"msg"`
			} `json:"Err"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Err.Msg != "internal: "+addrErr.Error() {
			t.Errorf("msg = %q", body.Err.Msg)
		}
	}
}
