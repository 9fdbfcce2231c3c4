package services

import (
	goContext "context"
	"testing"
	"time"

	"github.com/jaikeex/cookhound-api/shared"
)

func newTestQueueService() *QueueService {
	return &QueueService{
		defs:   make(map[string]*shared.JobDefinition),
		queues: make(map[string]*queueRuntime),
	}
}

func noopHandler(goContext.Context, *shared.Job) error { return nil }

func TestRegisterRequiresNameAndHandler(t *testing.T) {
	svc := newTestQueueService()

	if err := svc.Register(shared.JobDefinition{Handler: noopHandler}); err == nil {
		t.Error("nameless definition accepted")
	}
	if err := svc.Register(shared.JobDefinition{Name: "x"}); err == nil {
		t.Error("handlerless definition accepted")
	}
}

func TestRegisterAppliesDefaults(t *testing.T) {
	svc := newTestQueueService()

	if err := svc.Register(shared.JobDefinition{Name: "emails", Handler: noopHandler}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	def := svc.defs["emails"]
	if def.Queue != "emails" {
		t.Errorf("queue = %q, want job name", def.Queue)
	}
	if def.MaxAttempts != defaultMaxAttempts {
		t.Errorf("max attempts = %d, want %d", def.MaxAttempts, defaultMaxAttempts)
	}
	if def.RetryDelay != defaultRetryDelay {
		t.Errorf("retry delay = %v, want %v", def.RetryDelay, defaultRetryDelay)
	}
	if svc.queues["emails"].concurrency != defaultConcurrency {
		t.Errorf("concurrency = %d, want %d", svc.queues["emails"].concurrency, defaultConcurrency)
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	svc := newTestQueueService()

	if err := svc.Register(shared.JobDefinition{Name: "a", Handler: noopHandler}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := svc.Register(shared.JobDefinition{Name: "a", Handler: noopHandler}); err == nil {
		t.Error("duplicate job name accepted")
	}
}

func TestRegisterFirstRegistrantFixesQueueConcurrency(t *testing.T) {
	svc := newTestQueueService()

	if err := svc.Register(shared.JobDefinition{
		Name: "a", Queue: "shared", Concurrency: 4, Handler: noopHandler,
	}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Zero means "no opinion" and inherits the fixed value.
	if err := svc.Register(shared.JobDefinition{
		Name: "b", Queue: "shared", Handler: noopHandler,
	}); err != nil {
		t.Errorf("zero-concurrency registrant rejected: %v", err)
	}

	// Same non-zero value is consistent.
	if err := svc.Register(shared.JobDefinition{
		Name: "c", Queue: "shared", Concurrency: 4, Handler: noopHandler,
	}); err != nil {
		t.Errorf("matching concurrency rejected: %v", err)
	}

	// A different non-zero value is a wiring bug, not a silent override.
	if err := svc.Register(shared.JobDefinition{
		Name: "d", Queue: "shared", Concurrency: 8, Handler: noopHandler,
	}); err == nil {
		t.Error("conflicting concurrency accepted")
	}

	if svc.queues["shared"].concurrency != 4 {
		t.Errorf("queue concurrency = %d, want 4", svc.queues["shared"].concurrency)
	}
}

func TestRegisterKeepsExplicitSettings(t *testing.T) {
	svc := newTestQueueService()

	def := shared.JobDefinition{
		Name:        "purge",
		Queue:       "maintenance",
		MaxAttempts: 7,
		RetryDelay:  90 * time.Second,
		Handler:     noopHandler,
	}
	if err := svc.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got := svc.defs["purge"]
	if got.MaxAttempts != 7 || got.RetryDelay != 90*time.Second || got.Queue != "maintenance" {
		t.Errorf("definition mutated: %+v", got)
	}
}
