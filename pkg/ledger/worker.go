package ledger

import (
	"context"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/metrics"
	"github.com/skynet2/whatsapp-finance-assistant/pkg/printer"
)

// ImageJob asks the worker to read a receipt image and post it to the ledger.
type ImageJob struct {
	User              database.User
	ProviderMessageID string
	MediaID           string
	MimeType          string
	OriginalText      string
}

// ImageWorker consumes ImageJob values off an in-memory queue, outside of the webhook
// request that produced them.
type ImageWorker struct {
	writer    *Writer
	repo      Repo
	fetcher   MediaFetcher
	extractor RecordExtractor
	replier   Replier
	metrics   *metrics.Metrics

	workers int
	queue   chan ImageJob
	done    chan struct{}

	mut     sync.Mutex
	started bool
	stopped bool
}

func NewImageWorker(
	writer *Writer,
	repo Repo,
	fetcher MediaFetcher,
	extractor RecordExtractor,
	replier Replier,
	workers int,
	queueSize int,
	metrics *metrics.Metrics,
) *ImageWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &ImageWorker{
		writer:    writer,
		repo:      repo,
		fetcher:   fetcher,
		extractor: extractor,
		replier:   replier,
		metrics:   metrics,
		workers:   workers,
		queue:     make(chan ImageJob, queueSize),
		done:      make(chan struct{}),
	}
}

// Enqueue never blocks. It reports false when the queue is full or the worker is stopped.
func (w *ImageWorker) Enqueue(job ImageJob) bool {
	w.mut.Lock()
	defer w.mut.Unlock()

	if w.stopped {
		return false
	}

	select {
	case w.queue <- job:
		return true
	default:
		return false
	}
}

// Start consumes the queue until Stop is called. ctx carries the logger used by jobs.
func (w *ImageWorker) Start(ctx context.Context) {
	w.mut.Lock()
	if w.started {
		w.mut.Unlock()
		return
	}
	w.started = true
	w.mut.Unlock()

	pool := workerpool.New(w.workers)
	// a job leaves the queue only when a worker is free, so the queue stays the bound
	slots := make(chan struct{}, w.workers)

	go func() {
		defer close(w.done)

		for {
			slots <- struct{}{}

			job, ok := <-w.queue
			if !ok {
				break
			}

			pool.Submit(func() {
				defer func() { <-slots }()

				w.Process(ctx, job)
			})
		}

		pool.StopWait()
	}()
}

// Stop rejects new jobs and waits for the queued ones to finish.
func (w *ImageWorker) Stop() {
	w.mut.Lock()
	if w.stopped {
		w.mut.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	close(w.queue)
	w.mut.Unlock()

	if started {
		<-w.done
	}
}

func (w *ImageWorker) Process(ctx context.Context, job ImageJob) {
	lg := zerolog.Ctx(ctx).With().
		Str("user_id", job.User.ID).
		Str("message_id", job.ProviderMessageID).
		Logger()
	ctx = lg.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			w.metrics.Error("image_worker")
			lg.Error().Msgf("image job panicked: %v", r)
		}
	}()

	user := job.User

	posted, err := w.repo.IsTransactionPosted(ctx, job.ProviderMessageID)
	if err != nil {
		lg.Err(err).Msg("failed to check image transaction, continuing")
	}
	if posted {
		lg.Info().Msg("image already posted, skipping")
		return
	}

	file, err := w.fetcher.GetMedia(ctx, job.MediaID)
	if err != nil {
		w.metrics.Error("image_worker")
		lg.Err(err).Msg("failed to fetch image")
		w.replier.Reply(ctx, &user, printer.MediaUnavailableText)

		return
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = job.MimeType
	}

	record, err := w.extractor.ExtractFinancialRecord(ctx, file.Data, mimeType)
	if err != nil {
		w.metrics.Error("image_worker")
		lg.Err(err).Msg("structured extraction failed")
		w.replier.Reply(ctx, &user, printer.ImageNotReadText)

		return
	}

	reply := w.writer.PostImage(ctx, &user, job.ProviderMessageID, record, job.OriginalText)
	if reply == "" {
		return
	}

	w.replier.Reply(ctx, &user, reply)
}
