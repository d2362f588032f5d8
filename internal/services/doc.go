// Package services implements the preprocessing pipeline and the health
// reporting used by the command line and the HTTP trigger.
//
// PreprocessService wires the loader, cleaner, summarizer and CSV writer
// together:
//
//	svc, err := services.NewPreprocessService(cfg.Output, providers, logger)
//	result, err := svc.Run(ctx, files)
//
// Every run gets a trace ID in its context, a span per stage and a set of
// pipeline metrics. A run either returns a report for every loaded table or
// a classified *errors.AppError and no report.
package services
