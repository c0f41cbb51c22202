// Package server wraps http.Server with graceful shutdown, env driven
// configuration and optional TLS from certificate files.
//
// The server is meant to run inside an errgroup next to other workers:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// When the context is canceled the server stops accepting connections and
// waits up to the shutdown timeout for in-flight requests to finish.
package server
