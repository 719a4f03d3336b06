// Package notifyclient is the client side of the real-time task
// notification pipeline.
//
// A Manager owns at most one logical notification channel per process. It
// opens the channel with a credential, shares a single in-flight attempt
// between concurrent callers, reconnects with exponential backoff after an
// unexpected drop and settles into StateDisconnected when the credential is
// rejected. Close is terminal for the current channel and discards any
// handshake that completes after it.
//
// A Filter sits between the Manager and the application. It normalizes
// payload key casing, drops TaskAssigned events meant for other users and
// suppresses repeats of the same event within a short window.
//
//	filter := notifyclient.NewFilter(userID, func(msg events.Message) { ... })
//	mgr := notifyclient.NewManager(notifyclient.NewWSDialer(hubURL), notifyclient.Options{})
//	sub, err := mgr.Open(ctx, token, filter.Handle)
package notifyclient
