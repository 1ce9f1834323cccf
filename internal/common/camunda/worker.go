// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"

	"project-tracker/internal/common/config"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/common/metrics"
	"project-tracker/internal/common/observability"
)

// HandlerFunc is the signature every task handler's Handle method has.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// outcomeClient records whether the handler failed or threw the job.
type outcomeClient struct {
	worker.JobClient
	failed bool
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.failed = true
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.failed = true
	return c.JobClient.NewThrowErrorCommand()
}

// Instrument wraps a handler with the job metrics and a span per job.
// obs may be nil.
func Instrument(taskType string, obs *observability.Observability, h HandlerFunc) HandlerFunc {
	if obs == nil {
		obs = observability.Noop()
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		ctx, span := obs.StartSpan(context.Background(), "job "+taskType,
			attribute.Int64("job.key", job.Key),
			attribute.Int64("job.process_instance_key", job.ProcessInstanceKey),
			attribute.Int("job.retries", int(job.Retries)),
		)

		oc := &outcomeClient{JobClient: client}
		defer func() {
			elapsed := time.Since(start)
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

			status := "completed"
			var spanErr error
			if oc.failed {
				status = "failed"
				spanErr = fmt.Errorf("job %d failed", job.Key)
			} else {
				metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			}
			obs.RecordJob(ctx, taskType, status, elapsed)
			observability.EndSpan(span, spanErr)
		}()
		h(oc, job)
	}
}

// Pool tracks the job workers opened by the process so they can be closed together.
type Pool struct {
	client zbc.Client
	obs    *observability.Observability
	log    logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewPool(client zbc.Client, obs *observability.Observability, log logger.Logger) *Pool {
	return &Pool{client: client, obs: obs, log: log, workers: make(map[string]worker.JobWorker)}
}

// Start opens a job worker for taskType unless it is disabled in config.
func (p *Pool) Start(taskType string, wcfg config.WorkerConfig, h HandlerFunc) {
	if !wcfg.Enabled {
		p.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	jw := p.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, p.obs, h))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	p.mu.Lock()
	p.workers[taskType] = jw
	p.mu.Unlock()

	p.log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// TaskTypes lists the running workers.
func (p *Pool) TaskTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.workers))
	for t := range p.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for taskType, jw := range p.workers {
		jw.Close()
		jw.AwaitClose()
		p.log.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
	p.workers = make(map[string]worker.JobWorker)
}
