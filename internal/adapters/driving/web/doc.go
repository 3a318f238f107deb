// Package web serves the graph query API over HTTP.
//
// Routes:
//
//   - POST /graphql: GraphQL endpoint
//   - GET /graphql: 405 with a hint page pointing at GraphiQL
//   - GET /graphiql: interactive GraphiQL page
//   - GET /asset/{run}/{stream}/{dataset}/{id}: asset bytes, streamed from
//     the remote service with its status and headers
//   - anything else: 404 page
//
// The Authorization header of each request is forwarded unchanged to every
// remote call made while serving it. Every response carries an X-Request-ID.
package web
