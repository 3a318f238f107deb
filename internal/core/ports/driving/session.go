package driving

import (
	"context"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// SessionService resolves instrument sessions into runs and datasets.
// Every remote call made while serving one request carries the same
// credential; the empty credential sends none.
type SessionService interface {
	// AppMetadata returns the description of the remote service.
	AppMetadata(ctx context.Context, cred domain.Credential) (*domain.AppMetadata, error)

	// Runs returns the runs recorded in the named instrument session, in
	// the order the remote service lists them. Malformed entries are
	// skipped. No match yields an empty slice.
	Runs(ctx context.Context, session string, cred domain.Credential) ([]domain.Run, error)

	// Run looks up a single run by id.
	Run(ctx context.Context, id string, cred domain.Credential) (*domain.Run, error)

	// RunData returns the array and table datasets of every stream of the
	// run. Results are ordered by stream, then by dataset within a stream.
	// Container children are skipped.
	RunData(ctx context.Context, runID string, cred domain.Credential) ([]domain.RunData, error)

	// TableData fetches the content of a table dataset. A nil columns slice
	// requests every column.
	TableData(ctx context.Context, table *domain.TableData, columns []string, cred domain.Credential) (domain.Table, error)

	// TableByPath looks up the node at path and returns it if it is a table.
	// Returns domain.ErrNotTable for any other node.
	TableByPath(ctx context.Context, path string, cred domain.Credential) (*domain.TableData, error)
}
