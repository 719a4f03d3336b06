// Package notify is the server side of the real-time task notification
// pipeline.
//
// A Hub accepts WebSocket handshakes on /hubs/task, validates the
// credential that travels with the open request and registers one Session
// per accepted channel in a Registry. Publish broadcasts a task event to
// every registered session; relevance filtering is left to the clients.
//
// Delivery is best-effort. A session whose channel cannot take a message is
// unregistered and closed without affecting the others, and failures are
// never reported back to the publisher.
package notify
