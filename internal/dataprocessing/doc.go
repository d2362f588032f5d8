// Package dataprocessing loads tabular files into memory, cleans them and
// computes their descriptive statistics.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads CSV and Excel files named by a manifest into Tables
// 2. Cleaner: drops duplicate rows and imputes missing cells
// 3. Summarizer: reports shapes, column statistics and missing counts
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	loaded := loader.Load(ctx, files)
//
//	cleaner := dataprocessing.NewCleaner(logger)
//	for _, table := range loaded.Tables {
//	    cleaned, stats := cleaner.Clean(ctx, table)
//	    report := dataprocessing.Summarize(table, cleaned)
//	    ...
//	}
//
// # Data Flow
//
//	manifest → Loader → Tables → Cleaner → cleaned Tables → Summarizer → TableResult
//
// # Missing Values
//
// A cell is missing when its text is empty or one of the usual null markers
// (NA, N/A, NaN, null, None, #N/A and their variants). A column is numeric
// when every non-missing cell parses as a float.
//
// # Error Handling
//
// A file that cannot be read is recorded in LoadResult.Failed with a load
// error and the remaining files are still loaded. Cleaning and summarizing
// never fail.
package dataprocessing
