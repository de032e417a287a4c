// Package graphql renders GraphQL schema definitions (SDL) for extracted
// entity types.
//
// Every entity in an export.Snapshot becomes an object type:
//
//   - identifiers become ID!
//   - columns map their Column type to a GraphQL scalar; nullable columns
//     drop the non-null marker
//   - single-valued references become the target object type
//   - collection references become a non-null list of the target type
//
// Comments attached to a property become field descriptions.
//
//	snap := export.NewSnapshot(sets)
//	sdl, err := graphql.SDL(snap, graphql.WithNode())
package graphql
