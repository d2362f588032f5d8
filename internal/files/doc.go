// Package files discovers input tables on disk.
//
// Discovery turns a directory of uploads into manifest entries so a batch run
// can process every CSV and Excel file in it without a hand-written
// manifest:
//
//	entries, err := files.NewDiscovery(".").FindTableFiles("uploads")
package files
