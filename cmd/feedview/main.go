package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/samshad/5410-Serverless/internal/feedview"
)

// feedview is a terminal front-end for the feedback list: it fetches
// the whole collection, pages through it five records at a time and
// deletes individual records behind a confirmation prompt.
func main() {
	apiURL := flag.String("api", "http://localhost:8080", "base URL of the feedback API")
	flag.Parse()

	view := feedview.NewView(feedview.NewClient(*apiURL), log.Default())
	ctx := context.Background()

	if err := view.Refresh(ctx); err != nil {
		log.Fatal("Failed to fetch feedbacks: ", err)
	}

	render(view)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "f":
			view.First()
		case "p":
			view.Prev()
		case "n":
			view.Next()
		case "l":
			view.Last()
		case "r":
			if err := view.Refresh(ctx); err != nil {
				// Error state renders below; keep going.
				log.Println("refresh failed:", err)
			}
		case "d":
			if len(fields) < 2 {
				fmt.Println("usage: d <row>")
				fmt.Print("> ")
				continue
			}
			requestDelete(view, fields[1])
			confirmDelete(ctx, view, scanner)
		case "q":
			return
		default:
			fmt.Println("commands: f(irst) p(rev) n(ext) l(ast) r(efresh) d(elete) <row> q(uit)")
		}

		render(view)
		fmt.Print("> ")
	}
}

func requestDelete(view *feedview.View, rowArg string) {
	var row int
	if _, err := fmt.Sscanf(rowArg, "%d", &row); err != nil {
		fmt.Println("usage: d <row>")
		return
	}

	page := view.Page()
	if row < 1 || row > len(page) {
		fmt.Printf("row must be between 1 and %d\n", len(page))
		return
	}
	view.RequestDelete(page[row-1].FeedbackID)
}

func confirmDelete(ctx context.Context, view *feedview.View, scanner *bufio.Scanner) {
	id, ok := view.ConfirmingID()
	if !ok {
		return
	}

	fmt.Printf("Delete feedback %s? [y/N] ", id)
	if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
		view.CancelDelete()
		return
	}

	if err := view.ConfirmDelete(ctx); err != nil {
		// The view keeps the record and surfaces the notice on render.
		return
	}
}

func render(view *feedview.View) {
	switch view.Phase() {
	case feedview.PhaseLoading:
		fmt.Println("Loading...")
		return
	case feedview.PhaseError:
		fmt.Println("Error:", view.FetchError())
		return
	}

	if notice := view.Notice(); notice != "" {
		fmt.Println("!", notice)
	}

	page := view.Page()
	if len(page) == 0 {
		fmt.Println("No feedback yet.")
		return
	}

	for i, f := range page {
		fmt.Printf("%d. [%s] %s: %s (%s)\n",
			i+1, f.Polarity, f.Username, f.Feedback, f.DateTime.Local().Format("2006-01-02 15:04"))
	}
	fmt.Printf("page %d/%d (%d total)\n", view.PageNumber(), view.TotalPages(), len(view.Feedbacks()))
}
