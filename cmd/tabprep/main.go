// Command tabprep cleans tabular files and reports their statistics.
//
// tabprep run reads a manifest of CSV and Excel files, writes a cleaned copy
// of each table and prints one JSON line describing them. tabprep serve
// exposes the same pipeline over HTTP.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(newRootCommand()))
}
