// Package dom provides the document tree that delegated event routing
// dispatches over.
//
// The package replaces ambient browser globals with explicit values: a
// Document owns a tree of Nodes, and event sources construct Events and
// hand them to Node.DispatchEvent, which bubbles them synchronously from
// the target to the root. Each Node carries its own listener set, so a
// single listener attached to an ancestor observes events originating
// anywhere in its subtree — including nodes added after the listener was
// attached.
//
// # Building trees
//
// Elements are created with variadic builders:
//
//	list := dom.Ul(dom.ID("list"),
//	    dom.Li(dom.Class("item"), dom.ID("row-1"), dom.Span("one")),
//	    dom.Li(dom.Class("item"), dom.ID("row-2"), dom.Span("two")),
//	)
//
// # Selectors
//
// Compile parses compound simple selectors (tag, #id, .class,
// [attr=value], comma unions) into a Selector whose Matches method tests
// a single node. Combinators are deliberately absent: delegation walks
// the bubble path node by node.
//
// A Document and its nodes are confined to one goroutine; the session
// event loop in pkg/server is the usual owner.
package dom
