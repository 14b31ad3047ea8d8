// Package httpapi serves the taskdeck JSON API.
//
// Every route under /api requires a bearer session token; /health does
// not. The handlers are thin: they decode the request, pull the acting
// user from the authenticated identity, and delegate to the task and
// collaboration services. Authorization lives in those services, not
// here.
//
// Routes:
//
//	GET    /health
//	GET    /api/tasks
//	POST   /api/tasks
//	PUT    /api/tasks/{taskID}
//	DELETE /api/tasks/{taskID}
//	POST   /api/tasks/{taskID}/duplicate
//	GET    /api/tasks/{taskID}/comments
//	POST   /api/tasks/{taskID}/comments
//	DELETE /api/tasks/{taskID}/comments?commentId={id}
//	GET    /api/tasks/{taskID}/activity
//	POST   /api/tasks/{taskID}/activity
//	POST   /api/tasks/{taskID}/attachments
//	GET    /api/tags
//	POST   /api/tags
//	GET    /api/users
//
// Error mapping: unknown ids are 404, permission failures are 403,
// validation failures are 400 with the reason, and storage failures are
// a generic 500. Existence is checked before permission, so an unknown
// id is always a 404 regardless of who asks.
package httpapi
