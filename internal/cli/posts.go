package cli

import (
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hvalle/blogforge/internal/config"
	"github.com/hvalle/blogforge/internal/sanity"
)

func postsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List recently published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			store := sanity.NewClient(cfg.SanityProjectID, cfg.SanityDataset, cfg.SanityToken, cfg.SanityAPIVersion)
			posts, err := store.ListPosts(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tbl := table.New("Post ID", "Title", "Slug", "Published").
				WithWriter(cmd.OutOrStdout())
			for _, p := range posts {
				tbl.AddRow(p.ID, p.Title, p.Slug, p.PublishedAt)
			}
			tbl.Print()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of posts to list")

	return cmd
}
