package shared

import (
	"encoding/json"
	"testing"
)

func TestJobDecodePayload(t *testing.T) {
	job := Job{
		ID:      "job-1",
		Name:    "welcome_email",
		Payload: json.RawMessage(`{"email":"a@b.io","username":"anna"}`),
	}

	var payload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := job.DecodePayload(&payload); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.Email != "a@b.io" || payload.Username != "anna" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestJobDecodePayloadRejectsGarbage(t *testing.T) {
	job := Job{Payload: json.RawMessage(`{"email":`)}

	var payload map[string]interface{}
	if err := job.DecodePayload(&payload); err == nil {
		t.Error("truncated payload decoded without error")
	}
}
