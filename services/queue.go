package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jaikeex/cookhound-api/shared"
)

// QueueService runs background jobs over Redis lists. Job types register a
// shared.JobDefinition during the configure phase; Start launches the worker
// goroutines. Registration is one-shot and process-wide: there is no
// unregistration, and a duplicate job name is an error.
//
// Queue-level concurrency is fixed by the first definition that declares it;
// a later registrant declaring a different non-zero value for the same queue
// is rejected instead of silently ignored.
type QueueService struct {
	appContext.DefaultService

	redisSvc *RedisService

	mu     sync.Mutex
	defs   map[string]*shared.JobDefinition
	queues map[string]*queueRuntime

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type queueRuntime struct {
	name        string
	concurrency int
}

const QUEUE_SVC = "queue_svc"

const (
	queueKeyPrefix = "queue:"
	deadSuffix     = ":dead"

	defaultConcurrency = 1
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second

	popTimeout = 2 * time.Second
)

func (svc QueueService) Id() string {
	return QUEUE_SVC
}

func (svc *QueueService) Configure(ctx *appContext.Context) error {
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	svc.defs = make(map[string]*shared.JobDefinition)
	svc.queues = make(map[string]*queueRuntime)
	return svc.DefaultService.Configure(ctx)
}

// Register declares a job type. Call it before Start; definitions are
// immutable afterwards.
func (svc *QueueService) Register(def shared.JobDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("job definition requires a name")
	}
	if def.Handler == nil {
		return fmt.Errorf("job %q requires a handler", def.Name)
	}
	if def.Queue == "" {
		def.Queue = def.Name
	}
	if def.MaxAttempts <= 0 {
		def.MaxAttempts = defaultMaxAttempts
	}
	if def.RetryDelay <= 0 {
		def.RetryDelay = defaultRetryDelay
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, exists := svc.defs[def.Name]; exists {
		return fmt.Errorf("job %q already registered", def.Name)
	}

	queue, exists := svc.queues[def.Queue]
	if !exists {
		concurrency := def.Concurrency
		if concurrency <= 0 {
			concurrency = defaultConcurrency
		}
		queue = &queueRuntime{name: def.Queue, concurrency: concurrency}
		svc.queues[def.Queue] = queue
	} else if def.Concurrency > 0 && def.Concurrency != queue.concurrency {
		return fmt.Errorf("job %q declares concurrency %d but queue %q is fixed at %d",
			def.Name, def.Concurrency, def.Queue, queue.concurrency)
	}

	svc.defs[def.Name] = &def
	return nil
}

func (svc *QueueService) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	svc.cancel = cancel

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, queue := range svc.queues {
		for slot := 0; slot < queue.concurrency; slot++ {
			svc.wg.Add(1)
			go svc.worker(ctx, queue.name)
		}
		log.WithFields(log.Fields{
			"queue":       queue.name,
			"concurrency": queue.concurrency,
		}).Info("Queue workers started")
	}

	return nil
}

func (svc *QueueService) Shutdown() {
	if svc.cancel != nil {
		svc.cancel()
	}
	svc.wg.Wait()
}

// Enqueue schedules a registered job by name. Payload is marshalled to JSON
// and handed to the job handler as-is.
func (svc *QueueService) Enqueue(ctx context.Context, name string, payload interface{}) (string, error) {
	svc.mu.Lock()
	def, ok := svc.defs[name]
	svc.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("job %q is not registered", name)
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling payload for %q: %w", name, err)
	}

	job := shared.Job{
		ID:          uuid.NewString(),
		Name:        name,
		Payload:     raw,
		Attempt:     1,
		MaxAttempts: def.MaxAttempts,
		EnqueuedAt:  time.Now().UTC(),
	}

	if err := svc.push(ctx, def.Queue, &job); err != nil {
		return "", err
	}

	return job.ID, nil
}

func (svc *QueueService) push(ctx context.Context, queue string, job *shared.Job) error {
	envelope, err := sonic.Marshal(job)
	if err != nil {
		return err
	}

	return svc.redisSvc.LPush(ctx, queueKeyPrefix+queue, envelope)
}

func (svc *QueueService) worker(ctx context.Context, queue string) {
	defer svc.wg.Done()

	key := queueKeyPrefix + queue
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result, err := svc.redisSvc.BRPop(ctx, popTimeout, key)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).WithField("queue", queue).Error("Queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		if len(result) < 2 {
			continue
		}

		var job shared.Job
		if err := sonic.UnmarshalString(result[1], &job); err != nil {
			log.WithError(err).WithField("queue", queue).Error("Dropping undecodable job envelope")
			continue
		}

		svc.dispatch(ctx, queue, &job)
	}
}

func (svc *QueueService) dispatch(ctx context.Context, queue string, job *shared.Job) {
	svc.mu.Lock()
	def, ok := svc.defs[job.Name]
	svc.mu.Unlock()

	if !ok {
		log.WithFields(log.Fields{"queue": queue, "job": job.Name}).
			Error("No handler registered for dequeued job")
		return
	}

	err := def.Handler(ctx, job)
	if err == nil {
		log.WithFields(log.Fields{
			"queue":   queue,
			"job":     job.Name,
			"job_id":  job.ID,
			"attempt": job.Attempt,
		}).Info("Job completed")
		RecordJobOutcome(job.Name, "ok")
		return
	}

	log.WithFields(log.Fields{
		"queue":   queue,
		"job":     job.Name,
		"job_id":  job.ID,
		"attempt": job.Attempt,
	}).WithError(err).Warn("Job failed")

	if job.Attempt >= job.MaxAttempts {
		RecordJobOutcome(job.Name, "dead")
		if pushErr := svc.pushDead(ctx, queue, job); pushErr != nil {
			log.WithError(pushErr).WithField("job_id", job.ID).Error("Failed to dead-letter job")
		}
		return
	}

	RecordJobOutcome(job.Name, "retry")
	job.Attempt++
	select {
	case <-time.After(def.RetryDelay):
	case <-ctx.Done():
		// Requeue immediately on shutdown so the retry is not lost.
	}

	if pushErr := svc.push(context.WithoutCancel(ctx), queue, job); pushErr != nil {
		log.WithError(pushErr).WithField("job_id", job.ID).Error("Failed to requeue job")
	}
}

func (svc *QueueService) pushDead(ctx context.Context, queue string, job *shared.Job) error {
	envelope, err := sonic.Marshal(job)
	if err != nil {
		return err
	}
	return svc.redisSvc.LPush(context.WithoutCancel(ctx), queueKeyPrefix+queue+deadSuffix, envelope)
}
