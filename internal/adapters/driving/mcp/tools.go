package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// Dataset kinds reported by run_data.
const (
	kindArray = "array"
	kindTable = "table"
)

// AppMetadataInput is the input schema for the app_metadata tool.
type AppMetadataInput struct {
	Authorization string `json:"authorization,omitempty" jsonschema:"authorization header value forwarded to the data service"`
}

// AppMetadataOutput is the output schema for the app_metadata tool.
type AppMetadataOutput struct {
	APIVersion     int64               `json:"api_version"`
	LibraryVersion string              `json:"library_version"`
	Queries        []string            `json:"queries"`
	Formats        map[string][]string `json:"formats"`
}

// RunsInput is the input schema for the instrument_session_runs tool.
type RunsInput struct {
	Session       string `json:"session" jsonschema:"name of the instrument session, e.g. cm12345-1"`
	Authorization string `json:"authorization,omitempty" jsonschema:"authorization header value forwarded to the data service"`
}

// RunsOutput is the output schema for the instrument_session_runs tool.
type RunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput represents a single run.
type RunOutput struct {
	ID         string `json:"id"`
	ScanNumber *int64 `json:"scan_number,omitempty"`
	PlanName   string `json:"plan_name,omitempty"`
}

// RunDataInput is the input schema for the run_data tool.
type RunDataInput struct {
	RunID         string `json:"run_id" jsonschema:"id of the run"`
	Authorization string `json:"authorization,omitempty" jsonschema:"authorization header value forwarded to the data service"`
}

// RunDataOutput is the output schema for the run_data tool.
type RunDataOutput struct {
	Datasets []DatasetOutput `json:"datasets"`
	Count    int             `json:"count"`
}

// DatasetOutput represents one dataset of a run.
type DatasetOutput struct {
	Kind    string       `json:"kind"`
	Name    string       `json:"name"`
	Stream  string       `json:"stream"`
	Path    string       `json:"path,omitempty"`
	Columns []string     `json:"columns,omitempty"`
	Files   []FileOutput `json:"files,omitempty"`
}

// FileOutput represents one asset of an array dataset.
type FileOutput struct {
	File     string `json:"file"`
	Download string `json:"download,omitempty"`
}

// TableDataInput is the input schema for the table_data tool.
type TableDataInput struct {
	Path          string   `json:"path" jsonschema:"path of the table, as reported by run_data"`
	Columns       []string `json:"columns,omitempty" jsonschema:"columns to fetch (default all)"`
	Authorization string   `json:"authorization,omitempty" jsonschema:"authorization header value forwarded to the data service"`
}

// TableDataOutput is the output schema for the table_data tool.
type TableDataOutput struct {
	Path string         `json:"path"`
	Data map[string]any `json:"data"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "app_metadata",
		Description: "Describe the data service: API version, supported queries and formats",
	}, s.handleAppMetadata)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "instrument_session_runs",
		Description: "List the runs recorded in an instrument session",
	}, s.handleRuns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_data",
		Description: "List the array and table datasets of a run, with download links for array files",
	}, s.handleRunData)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "table_data",
		Description: "Fetch the columns of a table dataset",
	}, s.handleTableData)
}

func (s *Server) handleAppMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AppMetadataInput,
) (*mcp.CallToolResult, AppMetadataOutput, error) {
	meta, err := s.ports.Sessions.AppMetadata(ctx, s.credential(input.Authorization))
	if err != nil {
		return nil, AppMetadataOutput{}, fmt.Errorf("fetching app metadata: %w", err)
	}

	output := AppMetadataOutput{
		APIVersion:     meta.APIVersion,
		LibraryVersion: meta.LibraryVersion,
		Queries:        meta.Queries,
		Formats:        meta.Formats,
	}
	if output.Queries == nil {
		output.Queries = []string{}
	}
	if output.Formats == nil {
		output.Formats = map[string][]string{}
	}
	return nil, output, nil
}

func (s *Server) handleRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunsInput,
) (*mcp.CallToolResult, RunsOutput, error) {
	if input.Session == "" {
		return nil, RunsOutput{}, fmt.Errorf("%w: session is required", domain.ErrInvalidInput)
	}

	runs, err := s.ports.Sessions.Runs(ctx, input.Session, s.credential(input.Authorization))
	if err != nil {
		return nil, RunsOutput{}, fmt.Errorf("listing runs of %s: %w", input.Session, err)
	}

	output := RunsOutput{
		Runs:  make([]RunOutput, len(runs)),
		Count: len(runs),
	}
	for i := range runs {
		output.Runs[i] = toRunOutput(&runs[i])
	}
	return nil, output, nil
}

func (s *Server) handleRunData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunDataInput,
) (*mcp.CallToolResult, RunDataOutput, error) {
	if input.RunID == "" {
		return nil, RunDataOutput{}, fmt.Errorf("%w: run_id is required", domain.ErrInvalidInput)
	}

	data, err := s.ports.Sessions.RunData(ctx, input.RunID, s.credential(input.Authorization))
	if err != nil {
		return nil, RunDataOutput{}, fmt.Errorf("resolving data of run %s: %w", input.RunID, err)
	}

	output := RunDataOutput{
		Datasets: make([]DatasetOutput, 0, len(data)),
		Count:    len(data),
	}
	for _, d := range data {
		output.Datasets = append(output.Datasets, s.toDatasetOutput(d))
	}
	return nil, output, nil
}

func (s *Server) handleTableData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TableDataInput,
) (*mcp.CallToolResult, TableDataOutput, error) {
	if input.Path == "" {
		return nil, TableDataOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	cred := s.credential(input.Authorization)
	table, err := s.ports.Sessions.TableByPath(ctx, input.Path, cred)
	if err != nil {
		return nil, TableDataOutput{}, fmt.Errorf("looking up table %s: %w", input.Path, err)
	}

	columns := input.Columns
	if len(columns) == 0 {
		columns = nil
	}
	content, err := s.ports.Sessions.TableData(ctx, table, columns, cred)
	if err != nil {
		return nil, TableDataOutput{}, fmt.Errorf("fetching table %s: %w", input.Path, err)
	}

	output := TableDataOutput{
		Path: table.Path(),
		Data: make(map[string]any, len(content)),
	}
	for column, values := range content {
		output.Data[column] = values
	}
	return nil, output, nil
}

func toRunOutput(run *domain.Run) RunOutput {
	return RunOutput{
		ID:         run.ID(),
		ScanNumber: run.ScanNumber,
		PlanName:   run.PlanName,
	}
}

func (s *Server) toDatasetOutput(data domain.RunData) DatasetOutput {
	key := data.DatasetKey()
	out := DatasetOutput{Name: key.Dataset, Stream: key.Stream}

	switch d := data.(type) {
	case *domain.ArrayData:
		out.Kind = kindArray
		for _, link := range d.Files() {
			file := FileOutput{File: link.File()}
			if s.ports.Assets != nil {
				file.Download, _ = s.ports.Assets.DownloadURL(link)
			}
			out.Files = append(out.Files, file)
		}
	case *domain.TableData:
		out.Kind = kindTable
		out.Path = d.Path()
		out.Columns = d.Columns()
	}
	return out
}
