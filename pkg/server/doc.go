// Package server hosts forms over HTTP and WebSocket.
//
// Every registered form is served at /forms/{form} as a server-rendered
// page. The page script opens /ws/{form}, which gives the connection its
// own controller. Browser events are sent as JSON and dispatched to the
// rendered handlers by their data-hid; each event is answered with the
// re-rendered form and its error map.
//
// # Routes
//
//	GET /             index of forms
//	GET /forms/{form} server-rendered form page
//	GET /ws/{form}    live session
//	GET /metrics      Prometheus metrics (when a gatherer is configured)
//	GET /healthz      liveness check
//
// # Usage
//
//	srv := server.New(server.DefaultConfig(),
//	    server.WithLogger(logger),
//	    server.WithObserver(middleware.Prometheus(middleware.WithRegistry(reg))),
//	    server.WithGatherer(reg),
//	)
//	srv.Register(server.Form{Name: "login", Title: "Log in", View: loginView})
//	log.Fatal(srv.Run(ctx))
package server
