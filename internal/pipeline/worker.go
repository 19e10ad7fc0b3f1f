package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/richtext"
	"github.com/hvalle/blogforge/internal/sanity"
	"github.com/hvalle/blogforge/internal/seo"
)

// ArticleGenerator drafts Markdown body copy for a post title.
type ArticleGenerator interface {
	GenerateArticle(ctx context.Context, title string) (string, error)
}

// ImageGenerator renders hero-image bytes for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Publisher pushes posts and image assets to the content store.
type Publisher interface {
	CreatePost(ctx context.Context, post sanity.Post) (string, error)
	UploadImage(ctx context.Context, data []byte, filename string) (string, error)
}

// Worker processes one batch job: for each title it generates copy,
// converts it to blocks, attaches a hero image when possible, and publishes
// the post. Titles run sequentially with a fixed delay to respect upstream
// rate limits.
type Worker struct {
	articles ArticleGenerator
	images   ImageGenerator // nil disables hero images
	store    Publisher
	log      *slog.Logger

	publishDelay  time.Duration
	excerptLength int
	categoryID    string
}

func NewWorker(articles ArticleGenerator, images ImageGenerator, store Publisher, log *slog.Logger, publishDelay time.Duration, excerptLength int, categoryID string) *Worker {
	return &Worker{
		articles:      articles,
		images:        images,
		store:         store,
		log:           log,
		publishDelay:  publishDelay,
		excerptLength: excerptLength,
		categoryID:    categoryID,
	}
}

// Process runs the full batch. A failed title is logged and recorded but
// never aborts the rest of the batch.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	job.SetStatus(StatusGenerating, "generating")

	published := 0
	for i, title := range job.Titles {
		if i > 0 && w.publishDelay > 0 {
			select {
			case <-time.After(w.publishDelay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			job.AddError("batch interrupted: " + ctx.Err().Error())
			break
		}

		res := w.processTitle(ctx, log, job, i, title)
		job.AddResult(res)
		if res.Error != "" {
			log.Error("title failed", "title", title, "error", res.Error)
		} else {
			published++
			log.Info("post published", "title", title, "post_id", res.PostID, "has_image", res.HasImage)
		}
	}

	switch {
	case published == len(job.Titles):
		job.SetStatus(StatusCompleted, "done")
	case published > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "done")
	}
}

func (w *Worker) processTitle(ctx context.Context, log *slog.Logger, job *Job, idx int, title string) TitleResult {
	res := TitleResult{Title: title}
	phase := func(name string) string {
		return fmt.Sprintf("title %d/%d: %s", idx+1, len(job.Titles), name)
	}

	job.SetPhase(phase("generating copy"))
	var markdown string
	err := w.withRetry(ctx, log, "generate", func() error {
		var genErr error
		markdown, genErr = w.articles.GenerateArticle(ctx, title)
		return genErr
	})
	if err != nil {
		res.Error = fmt.Sprintf("generate: %s", err)
		return res
	}

	job.SetPhase(phase("converting"))
	body := richtext.Convert(markdown)
	if len(body) == 0 {
		res.Error = "convert: article produced no blocks"
		return res
	}

	slug := seo.Slugify(title)
	post := sanity.Post{
		Type:        "post",
		Title:       title,
		Slug:        sanity.NewSlug(slug),
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
		Excerpt:     seo.Excerpt(markdown, w.excerptLength),
		ReadingTime: seo.ReadingTime(markdown),
		Body:        body,
	}
	categoryID := job.CategoryID
	if categoryID == "" {
		categoryID = w.categoryID
	}
	if categoryID != "" {
		post.Categories = []sanity.Reference{sanity.NewCategoryRef(categoryID)}
	}

	if w.images != nil {
		job.SetPhase(phase("hero image"))
		if img := w.heroImage(ctx, log, title, slug); img != nil {
			post.MainImage = img
			res.HasImage = true
		}
	}

	job.SetPhase(phase("publishing"))
	err = w.withRetry(ctx, log, "publish", func() error {
		var pubErr error
		res.PostID, pubErr = w.store.CreatePost(ctx, post)
		return pubErr
	})
	if err != nil {
		res.Error = fmt.Sprintf("publish: %s", err)
		res.PostID = ""
		res.HasImage = false
		return res
	}
	res.Slug = slug
	return res
}

// heroImage generates and uploads the hero image. Failure is non-fatal:
// the post goes out without an image.
func (w *Worker) heroImage(ctx context.Context, log *slog.Logger, title, slug string) *sanity.Image {
	var data []byte
	err := w.withRetry(ctx, log, "image", func() error {
		var imgErr error
		data, imgErr = w.images.GenerateImage(ctx, genai.BuildImagePrompt(title))
		return imgErr
	})
	if err != nil {
		log.Warn("hero image generation failed, publishing without image", "title", title, "error", err)
		return nil
	}

	var assetID string
	err = w.withRetry(ctx, log, "upload", func() error {
		var upErr error
		assetID, upErr = w.store.UploadImage(ctx, data, slug+".png")
		return upErr
	})
	if err != nil {
		log.Warn("hero image upload failed, publishing without image", "title", title, "error", err)
		return nil
	}
	return sanity.NewImage(assetID)
}

// withRetry runs fn up to MaxRetries times, backing off between retryable
// failures. Non-retryable errors return immediately.
func (w *Worker) withRetry(ctx context.Context, log *slog.Logger, op string, fn func() error) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable failure", "op", op, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
