// Package app wires configuration, telemetry, the preprocessing pipeline and
// the HTTP trigger into one Application.
//
// # Initialization Flow
//
//	1. The caller loads configuration and creates the logger
//	2. NewApplication initializes OpenTelemetry
//	3. Services are created with their dependencies
//	4. The chi router and HTTP server are set up
//
// # Usage
//
// Batch mode runs the pipeline once:
//
//	app, err := app.NewApplication(cfg, logger)
//	defer app.Close(ctx)
//	result, err := app.RunBatch(ctx, files)
//
// Serve mode blocks until SIGINT, SIGTERM or ctx cancellation:
//
//	err := app.Run(ctx)
//
// # Error Handling
//
// Initialization errors are returned to the caller. The package never calls
// os.Exit, leaving the exit status to cmd/tabprep.
package app
