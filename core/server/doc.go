// Package server runs an http.Handler with production timeouts, optional TLS
// and graceful shutdown.
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Run(ctx, mux)(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a func() error so it can be handed to an errgroup directly.
// Settings can also come from the environment through Config and
// NewFromConfig.
package server
