package web

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

// schemaBuilder builds the GraphQL schema over the driving services.
type schemaBuilder struct {
	sessions driving.SessionService
	assets   driving.AssetService
}

// newSchema builds the query schema:
//
//	appMetadata: AppMetadata!
//	instrumentSession(name: String!): InstrumentSession!
//	run(id: String!): Run
//	table(path: String!): TableData
func newSchema(sessions driving.SessionService, assets driving.AssetService) (graphql.Schema, error) {
	b := &schemaBuilder{sessions: sessions, assets: assets}

	jsonScalar := graphql.NewScalar(graphql.ScalarConfig{
		Name:        "JSON",
		Description: "Arbitrary JSON value.",
		Serialize:   func(value any) any { return value },
	})

	assetType := b.assetType()
	arrayType := b.arrayType(assetType)
	tableType := b.tableType(jsonScalar)
	runDataType := graphql.NewUnion(graphql.UnionConfig{
		Name:  "RunData",
		Types: []*graphql.Object{arrayType, tableType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *domain.ArrayData:
				return arrayType
			case *domain.TableData:
				return tableType
			default:
				return nil
			}
		},
	})
	runType := b.runType(runDataType)
	sessionType := b.sessionType(runType)
	appType := b.appMetadataType(jsonScalar)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"appMetadata": &graphql.Field{
				Type: graphql.NewNonNull(appType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					meta, err := b.sessions.AppMetadata(p.Context, credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return meta, nil
				},
			},
			"instrumentSession": &graphql.Field{
				Type: graphql.NewNonNull(sessionType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					return domain.InstrumentSession{Name: name}, nil
				},
			},
			"run": &graphql.Field{
				Type: runType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					run, err := b.sessions.Run(p.Context, id, credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return *run, nil
				},
			},
			"table": &graphql.Field{
				Type: tableType,
				Args: graphql.FieldConfigArgument{
					"path": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					path, _ := p.Args["path"].(string)
					table, err := b.sessions.TableByPath(p.Context, path, credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return table, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func (b *schemaBuilder) appMetadataType(jsonScalar *graphql.Scalar) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "AppMetadata",
		Fields: graphql.Fields{
			"apiVersion": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.AppMetadata).APIVersion, nil
				},
			},
			"libraryVersion": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.AppMetadata).LibraryVersion, nil
				},
			},
			"queries": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.AppMetadata).Queries, nil
				},
			},
			"formats": &graphql.Field{
				Type: jsonScalar,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.AppMetadata).Formats, nil
				},
			},
			"authentication": &graphql.Field{
				Type: jsonScalar,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.AppMetadata).Authentication, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) sessionType(runType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "InstrumentSession",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.InstrumentSession).Name, nil
				},
			},
			"runs": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(runType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					session := p.Source.(domain.InstrumentSession)
					runs, err := b.sessions.Runs(p.Context, session.Name, credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return runs, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) runType(runDataType *graphql.Union) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Run",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					run := p.Source.(domain.Run)
					return run.ID(), nil
				},
			},
			"scanNumber": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					run := p.Source.(domain.Run)
					if run.ScanNumber == nil {
						return nil, nil
					}
					return *run.ScanNumber, nil
				},
			},
			"planName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					run := p.Source.(domain.Run)
					if run.PlanName == "" {
						return nil, nil
					}
					return run.PlanName, nil
				},
			},
			"data": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(runDataType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					run := p.Source.(domain.Run)
					data, err := b.sessions.RunData(p.Context, run.ID(), credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return data, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) arrayType(assetType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ArrayData",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.ArrayData).Name(), nil
				},
			},
			"stream": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.ArrayData).Key.Stream, nil
				},
			},
			"files": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(assetType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					files := p.Source.(*domain.ArrayData).Files()
					if files == nil {
						files = []domain.AssetLink{}
					}
					return files, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) assetType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Asset",
		Fields: graphql.Fields{
			"file": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.AssetLink).File(), nil
				},
			},
			"download": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if u, ok := b.assets.DownloadURL(p.Source.(domain.AssetLink)); ok {
						return u, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) tableType(jsonScalar *graphql.Scalar) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TableData",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.TableData).Name(), nil
				},
			},
			"stream": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*domain.TableData).Key.Stream, nil
				},
			},
			"columns": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					columns := p.Source.(*domain.TableData).Columns()
					if columns == nil {
						columns = []string{}
					}
					return columns, nil
				},
			},
			"data": &graphql.Field{
				Type: jsonScalar,
				Args: graphql.FieldConfigArgument{
					"columns": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					columns, err := stringList(p.Args["columns"])
					if err != nil {
						return nil, fail(err)
					}
					table := p.Source.(*domain.TableData)
					data, err := b.sessions.TableData(p.Context, table, columns, credentialFrom(p.Context))
					if err != nil {
						return nil, fail(err)
					}
					return data, nil
				},
			},
		},
	})
}

// stringList converts a list argument. A missing argument is nil.
func stringList(arg any) ([]string, error) {
	if arg == nil {
		return nil, nil
	}
	items, ok := arg.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of strings", domain.ErrInvalidInput)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list of strings", domain.ErrInvalidInput)
		}
		out = append(out, s)
	}
	return out, nil
}
