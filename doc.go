// Package logbridge is the request bridge between an embedded journal
// client and its web host.
//
// The bridge exposes a table of named functions to the host runtime. The
// central export, sendRequest, performs a blocking HTTP request with JSON
// content type and forwarded credentials and returns the response body.
// The online log repository uses the same primitive to read, write and
// remove journal entries and to fetch year overviews.
//
// # Basic Usage
//
//	b, err := logbridge.New(logbridge.Config{
//	    BaseURL:   "https://journal.example",
//	    AuthToken: token,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body := b.Send("POST", "/api/notes", `{"a":1}`)
//
// Send never reports failure; it returns whatever text arrived, possibly
// empty. Use [Bridge.Do] to tell transport, protocol and empty-body
// failures apart.
//
// # Blocking and the worker
//
// Every call blocks its caller. Without Start the request runs on the
// calling goroutine. After [Bridge.Start] requests run on a dedicated worker
// goroutine and the caller waits on a channel handoff; [Bridge.SendAsync]
// exposes that handoff directly.
//
// # Exports
//
// [Bridge.Call] invokes an export by name:
//
//	v, err := b.Call(ctx, "getContent", 2024, 3, 4)
package logbridge
