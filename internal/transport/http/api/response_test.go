package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuccessRoundTripsThroughRawEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "e1"}, "req-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env RawEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.RequestID != "req-1" || string(env.Data) != `{"id":"e1"}` {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestFailCarriesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusNotFound, "not_found", "Leave request not found", "")

	var env RawEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Message != "Leave request not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatal("expected json content type")
	}
}
