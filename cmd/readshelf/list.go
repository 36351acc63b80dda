package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/readshelf/readshelf/pkg/data"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books on your shelf",
	Long:  "Print your reading list as a table, optionally filtered by status or a title/author query",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		query, _ := cmd.Flags().GetString("query")

		status := data.StatusAll
		if statusFlag != "" {
			status = data.Status(statusFlag)
			if !status.Valid() {
				return fmt.Errorf("unknown status %q (want_to_read, reading or read)", statusFlag)
			}
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

		books, err := client.Books().List(ctx, session.AccessToken())
		if err != nil {
			return fmt.Errorf("could not load books: %w", err)
		}
		books = data.Filter(books, query, status)

		if len(books) == 0 {
			fmt.Println("📚 Nothing here. Use 'readshelf add' to put a book on the shelf.")
			return nil
		}

		columns := []table.Column{
			{Title: "Title", Width: 40},
			{Title: "Author", Width: 24},
			{Title: "Status", Width: 14},
			{Title: "Rating", Width: 8},
			{Title: "Progress", Width: 10},
			{Title: "Fav", Width: 4},
		}

		rows := []table.Row{}
		for _, b := range books {
			rating := "-"
			if b.Rating != nil {
				rating = strconv.Itoa(*b.Rating) + "/5"
			}
			progress := "-"
			if b.Status == data.StatusReading {
				progress = fmt.Sprintf("%d%%", b.ReadingProgress)
			}
			fav := ""
			if b.IsFavorite {
				fav = "♥"
			}
			rows = append(rows, table.Row{
				truncateString(b.Title, 38),
				truncateString(b.AuthorName(), 22),
				b.Status.Label(),
				rating,
				progress,
				fav,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Shelf (%d books)\n\n", len(books))
		fmt.Println(t.View())
		return nil
	},
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status: want_to_read, reading or read")
	listCmd.Flags().StringP("query", "q", "", "Filter by title or author substring")
	rootCmd.AddCommand(listCmd)
}
