package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/glazed/internal/adapters/driving/web"
	"github.com/custodia-labs/glazed/internal/core/domain"
)

var serveBind string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	Long: `Start the HTTP server exposing:

  POST /graphql                     GraphQL queries
  GET  /graphiql                    GraphiQL explorer
  GET  /asset/{run}/{stream}/{dataset}/{id}
                                    file download passthrough

The Authorization header of each request is forwarded to Tiled.
The server shuts down gracefully on SIGINT, SIGTERM or SIGQUIT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "address to listen on (overrides bind_address)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := serveSettings()
	if err != nil {
		return err
	}
	if err := ensureServices(); err != nil {
		return err
	}

	server, err := newWebServer(s)
	if err != nil {
		return err
	}
	return server.ListenAndServe(cmd.Context(), s.BindAddress)
}

// serveSettings loads the settings with --bind applied, so the derived
// public address follows the address actually served.
func serveSettings() (*domain.Settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if serveBind != "" && serveBind != s.BindAddress {
		next := *s
		next.BindAddress = serveBind
		if err := next.Validate(); err != nil {
			return nil, fmt.Errorf("--bind: %w", err)
		}
		*s = next
	}
	return s, nil
}

// newWebServer builds the HTTP server. GraphiQL posts to the public
// address only when one is configured, otherwise to the relative /graphql.
func newWebServer(s *domain.Settings) (*web.Server, error) {
	var endpoint string
	if s.PublicAddress != "" {
		public, err := s.PublicURL()
		if err != nil {
			return nil, err
		}
		endpoint = domain.AppendSegments(public, "graphql").String()
	}
	return web.NewServer(sessionService, assetService, endpoint)
}
