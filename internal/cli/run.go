package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hvalle/blogforge/internal/config"
	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/pipeline"
	"github.com/hvalle/blogforge/internal/sanity"
)

func runCmd() *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:   "run <titles-file>",
		Short: "Generate and publish a batch of posts from a titles file",
		Long: `Reads post titles from a file, one per line, and publishes each as a
blog post. Blank lines and lines starting with # are skipped. Configuration
comes from the same environment variables the server uses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := readTitles(args[0])
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				return fmt.Errorf("%s: no titles found", args[0])
			}

			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if len(titles) > cfg.MaxTitlesPerBatch {
				return fmt.Errorf("too many titles: %d (max %d per batch)", len(titles), cfg.MaxTitlesPerBatch)
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			stats := genai.NewMetrics(cfg.JobTTL)
			articles := genai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, stats)
			store := sanity.NewClient(cfg.SanityProjectID, cfg.SanityDataset, cfg.SanityToken, cfg.SanityAPIVersion)

			var images pipeline.ImageGenerator
			if cfg.ImagesEnabled() {
				images = genai.NewImageClient(cfg.OpenAIAPIKey, cfg.OpenAIImageModel, stats)
			}

			worker := pipeline.NewWorker(articles, images, store, log,
				cfg.PublishDelay, cfg.ExcerptLength, cfg.DefaultCategoryID)

			job := pipeline.NewJob(titles, categoryID)
			log.Info("running batch", "job_id", job.ID, "titles", len(titles))
			worker.Process(cmd.Context(), job)

			snap := job.Snapshot()
			printResults(cmd, snap)

			if snap.Status == pipeline.StatusFailed {
				return fmt.Errorf("batch failed: no posts published")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "category document ID to attach to every post")

	return cmd
}

func readTitles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var titles []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return titles, nil
}

func printResults(cmd *cobra.Command, snap pipeline.JobSnapshot) {
	tbl := table.New("Title", "Post ID", "Slug", "Image", "Error").
		WithWriter(cmd.OutOrStdout())
	for _, r := range snap.Results {
		img := ""
		if r.HasImage {
			img = "yes"
		}
		tbl.AddRow(r.Title, r.PostID, r.Slug, img, r.Error)
	}
	tbl.Print()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d published, status %s\n",
		snap.Progress.PostsPublished, snap.Progress.TotalTitles, snap.Status)
}
