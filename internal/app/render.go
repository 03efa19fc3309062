package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"text/tabwriter"

	"github.com/jaekwang-park/taskhub/internal/apiclient"
	"github.com/jaekwang-park/taskhub/internal/form"
	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/session"
	"github.com/jaekwang-park/taskhub/internal/todo"
)

// renderer writes results to out and notifications to errOut, so JSON on
// out stays parseable.
type renderer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
}

func newRenderer(out, errOut io.Writer, jsonOut bool) *renderer {
	return &renderer{out: out, errOut: errOut, json: jsonOut}
}

// emit prints v as JSON, or calls text with a tab-aligned writer.
func (r *renderer) emit(v any, text func(w io.Writer)) error {
	if r.json {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func (r *renderer) notice(format string, args ...any) {
	fmt.Fprintf(r.errOut, format+"\n", args...)
}

type failureBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// failure reports err as a one-line notification. Field errors list one line
// per field.
func (r *renderer) failure(err error) {
	body := failureBody{Error: describe(err)}
	if fe, ok := form.AsFieldErrors(err); ok {
		body.Fields = fe
	}

	if r.json {
		_ = json.NewEncoder(r.errOut).Encode(body)
		return
	}

	fmt.Fprintf(r.errOut, "error: %s\n", body.Error)
	fields := make([]string, 0, len(body.Fields))
	for f := range body.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(r.errOut, "  %s: %s\n", f, body.Fields[f])
	}
}

// describe picks the message a user should see for err.
func describe(err error) string {
	var fe form.FieldErrors
	switch {
	case errors.As(err, &fe):
		return "please correct the highlighted fields"
	case errors.Is(err, ErrLoginRequired):
		return "please sign in first: taskhub login"
	case errors.Is(err, ErrInternal):
		return "something went wrong, see the log for details"
	case errors.Is(err, session.ErrAuthentication):
		return "Login failed: " + apiclient.MessageOf(err, "invalid username or password")
	case errors.Is(err, session.ErrRegistration):
		return "Registration failed: " + apiclient.MessageOf(err, "please try again")
	case errors.Is(err, todo.ErrTodoNotFound):
		return err.Error()
	case apiclient.StatusOf(err) != 0:
		return apiclient.MessageOf(err, "request failed")
	case isTransportError(err):
		return "could not reach the server: " + err.Error()
	default:
		return err.Error()
	}
}

func isTransportError(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}

type todoRow struct {
	model.Todo
	PriorityLabel string `json:"priority_label"`
	Owner         string `json:"owner,omitempty"`
}

func rows(todos []model.Todo, owner func(int64) string) []todoRow {
	out := make([]todoRow, 0, len(todos))
	for _, t := range todos {
		row := todoRow{Todo: t, PriorityLabel: t.Priority.Label()}
		if owner != nil {
			row.Owner = owner(t.OwnerID)
		}
		out = append(out, row)
	}
	return out
}

func statusLabel(completed bool) string {
	if completed {
		return "done"
	}
	return "pending"
}

func writeTodoTable(w io.Writer, todos []todoRow, withOwner bool) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}
	if withOwner {
		fmt.Fprintln(w, "ID\tOWNER\tPRIORITY\tSTATUS\tTITLE\tDESCRIPTION")
	} else {
		fmt.Fprintln(w, "ID\tPRIORITY\tSTATUS\tTITLE\tDESCRIPTION")
	}
	for _, t := range todos {
		if withOwner {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Owner, t.PriorityLabel, statusLabel(t.Completed), t.Title, t.Description)
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.PriorityLabel, statusLabel(t.Completed), t.Title, t.Description)
		}
	}
}

func writeStats(w io.Writer, s todo.Stats) {
	fmt.Fprintf(w, "Total: %d\tCompleted: %d\tPending: %d\n\n", s.Total, s.Completed, s.Pending)
}

func writeUserTable(w io.Writer, users []model.User) {
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL\tROLE\tPHONE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.FullName(), u.Email, u.Role.Label(), u.PhoneNumber)
	}
}
