// Package pipeline runs title batches through generation, conversion, and
// publication with a bounded queue and a small worker pool.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hvalle/blogforge/internal/config"
	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/sanity"
)

// Orchestrator manages the post-generation pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	articles *genai.Client
	images   *genai.ImageClient
	store    *sanity.Client
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. images may be nil when hero-image
// generation is not configured.
func NewOrchestrator(cfg config.Config, articles *genai.Client, images *genai.ImageClient, store *sanity.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		articles: articles,
		images:   images,
		store:    store,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	// Keep the interface nil when no image client is configured.
	var images ImageGenerator
	if o.images != nil {
		images = o.images
	}

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.articles, images, o.store, o.log, o.cfg.PublishDelay, o.cfg.ExcerptLength, o.cfg.DefaultCategoryID)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new batch for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// StoreClient returns the content-store client for direct use by API handlers.
func (o *Orchestrator) StoreClient() *sanity.Client {
	return o.store
}
