// Package events defines the task-change notifications that flow from the
// business layer to connected clients.
//
// The business layer depends only on the Publisher interface; the
// notification hub implements it by broadcasting a Message to every open
// channel. Message is also the wire shape decoded by the client-side event
// filter, so both ends of the pipeline share these types.
//
// The primary components are:
// - Name: the event kind, TaskUpdated or TaskAssigned
// - Message: the JSON envelope sent over a channel
// - Publisher: implemented by anything that can fan an event out
// - Fanout: a Publisher that forwards to several registered Publishers
package events
