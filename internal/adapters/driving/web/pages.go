package web

import (
	"encoding/json"
	"fmt"
)

const pageStyle = `
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 {
            color: #333F50;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0;
            font-size: 16px;
        }
        a { color: #333F50; }`

func messagePage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>glazed - %s</title>
    <style>%s
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, title, pageStyle, title, body)
}

// getWarningHTML is served for non-POST requests to the GraphQL endpoint.
func getWarningHTML() string {
	return messagePage("GraphQL queries must be POSTed",
		`This endpoint only accepts POST requests. To explore the API interactively, open <a href="graphiql">GraphiQL</a>.`)
}

// notFoundHTML is served for unknown routes.
func notFoundHTML() string {
	return messagePage("Page not found",
		`Queries are served at <a href="/graphql">/graphql</a> and can be explored with <a href="/graphiql">GraphiQL</a>.`)
}

// graphiqlHTML renders the GraphiQL explorer pointed at endpoint.
func graphiqlHTML(endpoint string) string {
	// JSON encoding escapes <, > and & so the value is safe inside <script>.
	quoted, _ := json.Marshal(endpoint)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>glazed - GraphiQL</title>
    <style>
        body { height: 100%%; margin: 0; width: 100%%; overflow: hidden; }
        #graphiql { height: 100vh; }
    </style>
    <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
    <script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
</head>
<body>
    <div id="graphiql">Loading...</div>
    <script>
        const fetcher = GraphiQL.createFetcher({ url: %s });
        ReactDOM.createRoot(document.getElementById('graphiql')).render(
            React.createElement(GraphiQL, { fetcher: fetcher })
        );
    </script>
</body>
</html>
`, quoted)
}
