package table

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// View is one rendered page of a table.
type View struct {
	Title        string   `json:"title"`
	Endpoint     Endpoint `json:"endpoint"`
	Columns      []string `json:"columns"`
	Headers      []string `json:"headers"`
	Rows         []Row    `json:"rows"`
	ActionColumn bool     `json:"action_column"`
	CanCreate    bool     `json:"can_create"`
	Search       string   `json:"search"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
	TotalPages   int      `json:"total_pages"`
	Total        int      `json:"total"`
	HasPrev      bool     `json:"has_prev"`
	HasNext      bool     `json:"has_next"`
	Window       Window   `json:"window"`
}

type Row struct {
	ID      string        `json:"id"`
	Cells   []Cell        `json:"cells"`
	Actions []ActionState `json:"actions,omitempty"`
}

type ActionState struct {
	Action   Action `json:"action"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

const (
	emptyMessage = "No data found"
	busyLabel    = "Processing..."
)

// Render draws v to w as a terminal table, followed by the pagination
// footer when there is more than one page.
func Render(w io.Writer, v View) {
	if v.Title != "" {
		fmt.Fprintf(w, "%s (%d items)\n", v.Title, v.Total)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoWrapText(false)
	headers := v.Headers
	if v.ActionColumn {
		headers = append(append([]string(nil), headers...), "Actions")
	}
	tw.SetHeader(headers)

	if len(v.Rows) == 0 {
		filler := make([]string, len(headers))
		if len(filler) == 0 {
			filler = []string{""}
		}
		filler[0] = emptyMessage
		tw.Append(filler)
	}
	for _, r := range v.Rows {
		line := make([]string, 0, len(headers))
		for _, c := range r.Cells {
			if c.Badge != nil {
				line = append(line, "["+c.Text+"]")
				continue
			}
			line = append(line, c.Text)
		}
		if v.ActionColumn {
			line = append(line, actionText(r.Actions))
		}
		tw.Append(line)
	}
	tw.Render()

	if v.TotalPages > 1 {
		fmt.Fprintf(w, "%s  Page %d of %d\n", v.Window, v.Page, v.TotalPages)
	}
}

func actionText(actions []ActionState) string {
	var out string
	for i, a := range actions {
		if i > 0 {
			out += " "
		}
		label := a.Label
		if a.Disabled {
			label = busyLabel
		}
		out += "[" + label + "]"
	}
	return out
}
