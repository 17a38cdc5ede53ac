// Package ptero provides types, interfaces, and helpers for working with the
// Pterodactyl panel Application and Client APIs.
//
// # Overview
//
// Every call returns a normalized envelope (Response) or one of its views
// (ItemResponse, ListResponse, ActionResponse). HTTP failures and transport
// failures never surface as Go errors: they are carried in the envelope's OK,
// Status, Error and Errors fields, and Explain renders them for humans. Go
// errors are reserved for configuration mistakes such as a malformed API key,
// a disallowed HTTP method or invalid create parameters, which are reported
// before any request is sent.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ptero/pkg/ptero"
//	  "github.com/fivetwenty-io/ptero/pkg/pteroclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := pteroclient.New(&ptero.Config{BaseURL: "panel.example.com", Token: "ptlc_..."})
//	  if err != nil { log.Fatal(err) }
//
//	  servers := cli.Application().Servers().List().
//	    Include(ptero.ServerIncludeNode).
//	    Filter("name", "lobby").
//	    AllPages().
//	    Send(ctx)
//	  if !servers.OK { log.Fatal(servers.Explain()) }
//	}
//
// # Queries and pagination
//
// Query and ListQuery are immutable: every setter returns a new builder, so a
// partially configured builder can be stored and reused. AllPages makes Send
// walk meta.pagination until current_page reaches total_pages and merge every
// page's items. ForEachPage and CollectPages expose the same walk directly.
//
// # Rate limits
//
// The envelope parses X-RateLimit-Limit, X-RateLimit-Remaining,
// X-RateLimit-Reset and Retry-After. The client never retries on its own
// unless Config.RetryMax is raised; RetryAfterSeconds tells callers how long
// to back off.
//
// # Interceptors and caching
//
// Config accepts request and response interceptors (headers, request IDs,
// logging, client-side throttling, metrics) and an optional Cache that serves
// repeated successful GETs from memory or a NATS JetStream key-value bucket.
package ptero
