// Command taskctl works with task fixtures offline: list them through the
// same filter pipeline the API uses, render the PDF report, and generate
// the secrets and SSH keys the server configuration expects.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
