// Command aqreport computes dashboard reports from the command line and
// exports the loaded data set to SQLite.
//
// Usage:
//
//	go run ./cmd/aqreport describe --location Dongsi --start 2014-01-01 --end 2014-12-31 --format yaml
//	go run ./cmd/aqreport export --out aq.db
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
