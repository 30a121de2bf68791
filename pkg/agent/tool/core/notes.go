package core

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hemera/pkg/agent/tool"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
)

// notesTool fetches recent dated notes through a NoteSource
type notesTool struct {
	source interfaces.NoteSource
}

func (t *notesTool) Name() string {
	return "notes"
}

func (t *notesTool) Description() string {
	return "Fetch the most recent dated notes from the notes directory. Pass `count` to control how many to return."
}

func (t *notesTool) Parameters() map[string]*gollem.Parameter {
	return map[string]*gollem.Parameter{
		"count": {
			Type:        gollem.TypeInteger,
			Description: "How many notes to fetch",
		},
	}
}

// Invoke reads the count from the payload. A bare integer string is
// accepted in place of a JSON object; anything else falls back to the
// source's default window.
func (t *notesTool) Invoke(ctx context.Context, raw string) (string, error) {
	count := 0
	if raw != "" {
		var args struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal([]byte(raw), &args); err == nil {
			if args.Count > 0 {
				count = args.Count
			}
		} else if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			count = n
		}
	}

	tool.Update(ctx, "Reading recent notes...")
	return t.source.RecentNotes(ctx, count)
}
