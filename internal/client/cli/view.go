package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/tasks"
)

func statusMark(s tasks.Status) string {
	switch s {
	case tasks.StatusCompleted:
		return "[x]"
	case tasks.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// dueLabel shows the due date as a calendar day, flagging overdue tasks.
func dueLabel(t tasks.Task, now time.Time) string {
	due, ok := t.Due()
	if !ok {
		return ""
	}
	label := due.Format(time.DateOnly)
	if t.IsOverdue(now) {
		label += " (overdue)"
	}
	return label
}

func printTasks(w io.Writer, list []tasks.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tPRIORITY\tCATEGORY\tDUE")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
			t.ID, statusMark(t.Status), t.Status.Label(), t.Title, t.Priority, t.Category, dueLabel(t, now))
	}
	_ = tw.Flush()
}

func printStats(w io.Writer, st tasks.Stats) {
	fmt.Fprintf(w, "Total: %d  Completed: %d  In progress: %d  Overdue: %d  Completion: %d%%\n",
		st.Total, st.Completed, st.InProgress, st.Overdue, st.CompletionRate)
}

func printProfile(w io.Writer, p tasks.Profile) {
	printStats(w, p.Stats)
	fmt.Fprintf(w, "Categories used: %d\n", p.Categories)
	fmt.Fprintf(w, "Rating: %s\n", p.Rating)
	fmt.Fprintln(w, "Achievements:")
	for _, ach := range p.Achievements {
		mark := " "
		if ach.Earned {
			mark = "*"
		}
		fmt.Fprintf(w, "  [%s] %s - %s\n", mark, ach.Title, ach.Description)
	}
}
