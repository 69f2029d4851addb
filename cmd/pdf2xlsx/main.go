// Command pdf2xlsx extracts tables from PDF documents into XLSX workbooks,
// either from local files or from the configured object store.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
