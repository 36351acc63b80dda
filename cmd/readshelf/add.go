package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readshelf/readshelf/pkg/data"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a book to your shelf",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("author")
		statusFlag, _ := cmd.Flags().GetString("status")
		rating, _ := cmd.Flags().GetInt("rating")
		review, _ := cmd.Flags().GetString("review")
		favorite, _ := cmd.Flags().GetBool("favorite")
		progress, _ := cmd.Flags().GetInt("progress")

		draft := data.BookDraft{
			Title:           strings.Join(args, " "),
			Author:          author,
			Status:          data.Status(statusFlag),
			Review:          review,
			IsFavorite:      favorite,
			ReadingProgress: progress,
		}
		if rating > 0 {
			draft.Rating = &rating
		}
		if errs := draft.Validate(); len(errs) > 0 {
			return fmt.Errorf("invalid book: %s", errs[0])
		}

		_, client, session, err := newEnv()
		if err != nil {
			return err
		}
		defer session.Close()

		ctx := context.Background()
		if err := requireSession(ctx, session); err != nil {
			return err
		}

		book, err := client.Books().Insert(ctx, session.AccessToken(), session.UserID(), draft)
		if err != nil {
			return fmt.Errorf("could not add the book: %w", err)
		}
		fmt.Printf("✅ Added “%s” to your shelf\n", book.Title)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("author", "a", "", "Author name")
	addCmd.Flags().StringP("status", "s", string(data.StatusWantToRead), "want_to_read, reading or read")
	addCmd.Flags().IntP("rating", "r", 0, "Rating 1-5")
	addCmd.Flags().String("review", "", "Review text")
	addCmd.Flags().Bool("favorite", false, "Mark as favorite")
	addCmd.Flags().Int("progress", 0, "Reading progress 0-100")
	rootCmd.AddCommand(addCmd)
}
