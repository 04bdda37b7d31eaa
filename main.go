// portfolio serves the portfolio site and its veille browser, exports it
// as static files and refreshes the veille content from RSS feeds.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
