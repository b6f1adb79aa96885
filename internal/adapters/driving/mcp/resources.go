package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for timecard resources.
	uriScheme = "timecard://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "days/{date}",
		Name:        "day",
		Description: "Time card of one day (date as YYYY-MM-DD)",
		MIMEType:    "application/json",
	}, s.handleDayResource)
}

// handleDayResource returns the time card of the day in the URI.
func (s *Server) handleDayResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	date, ok := extractDate(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	card, err := s.ports.TimeCard.Day(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading day: %w", err)
	}

	data, err := json.MarshalIndent(s.dayOutput(card), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling day: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDate extracts the date from a URI like timecard://days/{date}.
func extractDate(uri string) (time.Time, bool) {
	const prefix = uriScheme + "days/"

	if !strings.HasPrefix(uri, prefix) {
		return time.Time{}, false
	}
	date, err := domain.ParseDay(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
