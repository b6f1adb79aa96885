package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// EntryOutput is one entry as returned by the tools.
type EntryOutput struct {
	Date        string  `json:"date"`
	LineItem    int     `json:"line_item"`
	Workorder   string  `json:"workorder"`
	Phase       string  `json:"phase"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Action      string  `json:"action"`
	TimeCode    string  `json:"time_code"`
}

func entryOutput(e domain.Entry) EntryOutput {
	return EntryOutput{
		Date:        e.WorkDate.Format(domain.DateLayout),
		LineItem:    e.LineItem,
		Workorder:   e.Workorder,
		Phase:       e.Phase,
		Hours:       e.Hours,
		Description: e.Description,
		Action:      string(e.Action),
		TimeCode:    string(e.TimeCode),
	}
}

// DayInput is the input schema for the timecard_day tool.
type DayInput struct {
	Date string `json:"date" jsonschema:"the day as YYYY-MM-DD"`
}

// DayOutput is the output schema for the timecard_day tool.
type DayOutput struct {
	Date        string        `json:"date"`
	Entries     []EntryOutput `json:"entries"`
	Hours       float64       `json:"hours"`
	MeetsTarget bool          `json:"meets_target"`
}

// FindInput is the input schema for the timecard_find tool.
type FindInput struct {
	Text string `json:"text" jsonschema:"text the entry description contains, ignoring case"`
	From string `json:"from,omitempty" jsonschema:"first day searched as YYYY-MM-DD (default 2019-01-01)"`
	To   string `json:"to,omitempty" jsonschema:"last day searched as YYYY-MM-DD (default today)"`
}

// FindOutput is the output schema for the timecard_find tool.
type FindOutput struct {
	Entries []EntryOutput `json:"entries"`
	Count   int           `json:"count"`
}

// AppendInput is the input schema for the timecard_append tool.
type AppendInput struct {
	Date        string  `json:"date" jsonschema:"the day as YYYY-MM-DD"`
	Workorder   string  `json:"workorder,omitempty" jsonschema:"workorder number, zero-padded to 6 digits"`
	Phase       string  `json:"phase,omitempty" jsonschema:"phase number, zero-padded to 3 digits"`
	Hours       float64 `json:"hours" jsonschema:"hours worked"`
	Description string  `json:"description" jsonschema:"what was done"`
	Action      string  `json:"action,omitempty" jsonschema:"WORK COMPLETE, ACTIVE/ONGOING, INITIAL RESPOND or OVERHEAD"`
	TimeCode    string  `json:"time_code,omitempty" jsonschema:"time code such as R, OT, A, S (default R)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timecard_day",
		Description: "List the time-card entries of a day with their total hours",
	}, s.handleDay)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timecard_find",
		Description: "Find time-card entries whose description contains a text",
	}, s.handleFind)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timecard_append",
		Description: "Append an entry to the end of a day's time card",
	}, s.handleAppend)
}

// handleDay handles the timecard_day tool invocation.
func (s *Server) handleDay(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DayInput,
) (*mcp.CallToolResult, DayOutput, error) {
	date, err := domain.ParseDay(input.Date)
	if err != nil {
		return nil, DayOutput{}, err
	}
	card, err := s.ports.TimeCard.Day(ctx, date)
	if err != nil {
		return nil, DayOutput{}, fmt.Errorf("loading day: %w", err)
	}
	return nil, s.dayOutput(card), nil
}

func (s *Server) dayOutput(card domain.TimeCard) DayOutput {
	output := DayOutput{
		Date:    card.Date.Format(domain.DateLayout),
		Entries: make([]EntryOutput, len(card.Entries)),
		Hours:   card.Hours(),
	}
	for i, e := range card.Entries {
		output.Entries[i] = entryOutput(e)
	}
	if target := s.dailyTarget(); target > 0 {
		output.MeetsTarget = card.MeetsTarget(target)
	}
	return output
}

// handleFind handles the timecard_find tool invocation.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	query := driving.FindQuery{Text: input.Text}
	var err error
	if input.From != "" {
		if query.From, err = domain.ParseDay(input.From); err != nil {
			return nil, FindOutput{}, err
		}
	}
	if input.To != "" {
		if query.To, err = domain.ParseDay(input.To); err != nil {
			return nil, FindOutput{}, err
		}
	}

	entries, err := s.ports.TimeCard.Find(ctx, query)
	if err != nil {
		return nil, FindOutput{}, fmt.Errorf("finding entries: %w", err)
	}

	output := FindOutput{
		Entries: make([]EntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		output.Entries[i] = entryOutput(e)
	}
	return nil, output, nil
}

// handleAppend handles the timecard_append tool invocation.
func (s *Server) handleAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AppendInput,
) (*mcp.CallToolResult, EntryOutput, error) {
	date, err := domain.ParseDay(input.Date)
	if err != nil {
		return nil, EntryOutput{}, err
	}
	code, err := domain.ParseTimeCode(input.TimeCode)
	if err != nil {
		return nil, EntryOutput{}, err
	}
	entry := domain.Entry{
		Workorder:   input.Workorder,
		Phase:       input.Phase,
		Hours:       input.Hours,
		Description: input.Description,
		TimeCode:    code,
	}
	if input.Action != "" {
		if entry.Action, err = domain.ParseAction(input.Action); err != nil {
			return nil, EntryOutput{}, err
		}
	}

	added, err := s.ports.TimeCard.Append(ctx, date, entry)
	if err != nil {
		return nil, EntryOutput{}, fmt.Errorf("appending entry: %w", err)
	}
	return nil, entryOutput(*added), nil
}
