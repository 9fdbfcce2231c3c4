package services

import (
	goContext "context"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/shared"
)

// Job names. Payload structs sit next to them so producers and handlers
// share one definition.
const (
	JobWelcomeEmail       = "welcome_email"
	JobPasswordResetEmail = "password_reset_email"
	JobRecipeImagePurge   = "recipe_image_purge"
	JobCounterReconcile   = "counter_reconcile"
)

type WelcomeEmailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type PasswordResetEmailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

type RecipeImagePurgePayload struct {
	RecipeID string `json:"recipe_id"`
}

// JobsService owns every background job definition. Registration happens
// once at configure time, before the queue workers start.
type JobsService struct {
	context.DefaultService

	queueSvc *QueueService
	emailSvc *EmailService
	mediaSvc *MediaService
	redisSvc *RedisService

	reconcileStop chan struct{}
}

const JOBS_SVC = "jobs_svc"

const counterReconcileInterval = time.Hour

func (svc JobsService) Id() string {
	return JOBS_SVC
}

func (svc *JobsService) Configure(ctx *context.Context) error {
	svc.queueSvc = ctx.Service(QUEUE_SVC).(*QueueService)
	svc.emailSvc = ctx.Service(EMAIL_SVC).(*EmailService)
	svc.mediaSvc = ctx.Service(MEDIA_SVC).(*MediaService)
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	svc.reconcileStop = make(chan struct{})

	definitions := []shared.JobDefinition{
		{
			Name:        JobWelcomeEmail,
			Queue:       "emails",
			Concurrency: 2,
			MaxAttempts: 3,
			RetryDelay:  30 * time.Second,
			Handler:     svc.handleWelcomeEmail,
		},
		{
			Name:        JobPasswordResetEmail,
			Queue:       "emails",
			MaxAttempts: 5,
			RetryDelay:  15 * time.Second,
			Handler:     svc.handlePasswordResetEmail,
		},
		{
			Name:        JobRecipeImagePurge,
			Queue:       "maintenance",
			MaxAttempts: 3,
			RetryDelay:  time.Minute,
			Handler:     svc.handleRecipeImagePurge,
		},
		{
			Name:        JobCounterReconcile,
			Queue:       "maintenance",
			MaxAttempts: 1,
			Handler:     svc.handleCounterReconcile,
		},
	}

	for _, def := range definitions {
		if err := svc.queueSvc.Register(def); err != nil {
			return err
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *JobsService) Start() error {
	go svc.reconcileLoop()
	return nil
}

func (svc *JobsService) Shutdown() {
	close(svc.reconcileStop)
}

func (svc *JobsService) handleWelcomeEmail(ctx goContext.Context, job *shared.Job) error {
	var payload WelcomeEmailPayload
	if err := job.DecodePayload(&payload); err != nil {
		return err
	}
	return svc.emailSvc.SendWelcomeEmail(payload.Email, payload.Username)
}

func (svc *JobsService) handlePasswordResetEmail(ctx goContext.Context, job *shared.Job) error {
	var payload PasswordResetEmailPayload
	if err := job.DecodePayload(&payload); err != nil {
		return err
	}
	return svc.emailSvc.SendPasswordResetEmail(payload.Email, payload.Username, payload.Code)
}

func (svc *JobsService) handleRecipeImagePurge(ctx goContext.Context, job *shared.Job) error {
	var payload RecipeImagePurgePayload
	if err := job.DecodePayload(&payload); err != nil {
		return err
	}
	return svc.mediaSvc.PurgeRecipeImages(ctx, payload.RecipeID)
}

// handleCounterReconcile removes rate-limit counters that lost their expiry
// (restores from backup, manual edits). A counter without a TTL would deny
// its identity forever.
func (svc *JobsService) handleCounterReconcile(ctx goContext.Context, job *shared.Job) error {
	keys, err := svc.redisSvc.Keys(ctx, "rl:*")
	if err != nil {
		return err
	}

	removed := 0
	for _, key := range keys {
		ttl, err := svc.redisSvc.TTL(ctx, key)
		if err != nil {
			return err
		}
		if ttl < 0 {
			if err := svc.redisSvc.Delete(ctx, key); err != nil {
				return err
			}
			removed++
		}
	}

	if removed > 0 {
		log.WithField("removed", removed).Info("Reconciled orphaned rate-limit counters")
	}
	return nil
}

func (svc *JobsService) reconcileLoop() {
	ticker := time.NewTicker(counterReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-svc.reconcileStop:
			return
		case <-ticker.C:
			if _, err := svc.queueSvc.Enqueue(goContext.Background(), JobCounterReconcile, struct{}{}); err != nil {
				log.WithError(err).Error("Failed to enqueue counter reconcile")
			}
		}
	}
}
