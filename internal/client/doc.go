// Package client is the Go client for the taskdeck HTTP API.
//
// Client wraps the JSON endpoints with typed methods, authenticating
// every request with a bearer token:
//
//	c := client.New("http://localhost:8080", token)
//	tasks, err := c.ListTasks(ctx)
//
// Board layers optimistic drag-and-drop state on top: Move applies a
// status change locally before the network round-trip, returning a
// revision token; Reconcile folds the server's answer back in, reverting
// failed moves and discarding responses that arrive after a newer move
// on the same task.
package client
