package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/tasks"
)

// clearMark entered at an edit prompt removes an optional field.
const clearMark = "-"

// List prints the user's tasks, optionally filtered:
//
//	list --status todo --priority high --category Work --search report
func (a *App) List(ctx context.Context, args []string) error {
	var f tasks.Filter

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.Status, "status", "", "todo, in_progress, completed or all")
	fs.StringVar(&f.Priority, "priority", "", "low, medium, high or all")
	fs.StringVar(&f.Category, "category", "", "category name or all")
	fs.StringVar(&f.Search, "search", "", "text to find in title or description")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: list [--status s] [--priority p] [--category c] [--search q]: %w", err)
	}
	if rest := fs.Args(); len(rest) > 0 && f.Search == "" {
		f.Search = strings.Join(rest, " ")
	}

	var (
		list []tasks.Task
		err  error
	)
	if f == (tasks.Filter{}) {
		list, err = a.backend.ListTasks(ctx)
	} else {
		list, err = a.backend.FilterTasks(ctx, f)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		return nil
	}
	printTasks(a.out, list, a.now())
	return nil
}

// Add prompts for the fields of a new task.
func (a *App) Add(ctx context.Context) error {
	var in tasks.Input
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	priority, err := getSimpleText(a.reader, "Priority: low, medium, high [medium]", a.out)
	if err != nil {
		return err
	}
	in.Priority = tasks.Priority(strings.ToLower(priority))

	cats, err := a.backend.Categories(ctx)
	if err != nil {
		return err
	}
	prompt := "Category"
	if len(cats) > 0 {
		prompt = fmt.Sprintf("Category (%s)", strings.Join(cats, ", "))
	}
	if in.Category, err = getSimpleText(a.reader, prompt, a.out); err != nil {
		return err
	}

	if in.DueDate, err = getSimpleText(a.reader, "Due date YYYY-MM-DD (optional)", a.out); err != nil {
		return err
	}

	t, err := a.backend.CreateTask(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task %s created.\n", t.ID)
	return nil
}

// findTask looks id up among the user's tasks.
func (a *App) findTask(ctx context.Context, args []string, usage string) (*tasks.Task, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: " + usage)
	}
	list, err := a.backend.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == args[0] {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("task %s not found", args[0])
}

// Edit prompts for each field, showing the current value. An empty answer
// keeps the value and "-" clears description or due date.
func (a *App) Edit(ctx context.Context, args []string) error {
	t, err := a.findTask(ctx, args, "edit <id>")
	if err != nil {
		return err
	}

	var p tasks.Patch

	if v, changed, err := GetOptional(a.reader, "Title", t.Title, a.out); err != nil {
		return err
	} else if changed {
		p.Title = &v
	}

	if v, changed, err := GetOptional(a.reader, "Description ('-' clears)", t.Description, a.out); err != nil {
		return err
	} else if changed {
		if v == clearMark {
			p.ClearDescription = true
		} else {
			p.Description = &v
		}
	}

	if v, changed, err := GetOptional(a.reader, "Status: todo, in_progress, completed", string(t.Status), a.out); err != nil {
		return err
	} else if changed {
		s := tasks.Status(strings.ToLower(v))
		p.Status = &s
	}

	if v, changed, err := GetOptional(a.reader, "Priority: low, medium, high", string(t.Priority), a.out); err != nil {
		return err
	} else if changed {
		pr := tasks.Priority(strings.ToLower(v))
		p.Priority = &pr
	}

	if v, changed, err := GetOptional(a.reader, "Category", t.Category, a.out); err != nil {
		return err
	} else if changed {
		p.Category = &v
	}

	if v, changed, err := GetOptional(a.reader, "Due date ('-' clears)", t.DueDate, a.out); err != nil {
		return err
	} else if changed {
		if v == clearMark {
			p.ClearDueDate = true
		} else {
			p.DueDate = &v
		}
	}

	if p == (tasks.Patch{}) {
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}

	updated, err := a.backend.UpdateTask(ctx, t.ID, p)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("task %s not found", t.ID)
	}
	fmt.Fprintf(a.out, "Task %s updated.\n", updated.ID)
	return nil
}

// Toggle advances the status: todo -> in_progress -> completed -> todo.
func (a *App) Toggle(ctx context.Context, args []string) error {
	t, err := a.findTask(ctx, args, "toggle <id>")
	if err != nil {
		return err
	}

	next := tasks.NextStatus(t.Status)
	updated, err := a.backend.UpdateTask(ctx, t.ID, tasks.Patch{Status: &next})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("task %s not found", t.ID)
	}
	fmt.Fprintf(a.out, "%s is now %s.\n", updated.Title, updated.Status.Label())
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	t, err := a.findTask(ctx, args, "delete <id>")
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", t.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	deleted, err := a.backend.DeleteTask(ctx, t.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("task %s not found", t.ID)
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.backend.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(a.out, st)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.backend.Profile(ctx)
	if err != nil {
		return err
	}
	if a.user != nil {
		fmt.Fprintf(a.out, "%s <%s>\n", a.user.Name, a.user.Email)
	}
	printProfile(a.out, p)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.backend.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, "  "+c)
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		return errors.New("usage: addcategory <name>")
	}
	cats, err := a.backend.AddCategory(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(cats, ", "))
	return nil
}

func (a *App) Seed(ctx context.Context) error {
	seeded, err := a.backend.SeedSampleData(ctx)
	if err != nil {
		return err
	}
	if len(seeded) == 0 {
		fmt.Fprintln(a.out, "You already have tasks; nothing seeded.")
		return nil
	}
	fmt.Fprintf(a.out, "Added %d sample tasks.\n", len(seeded))
	return nil
}
