// Command orixdb creates, inspects and serves OrixDB stores.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/orixdb/orixdb"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

// exitCode prints err and maps it to the process status. A declined
// confirmation is not a failure.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, orixdb.ErrDeclined):
		fmt.Fprintln(stderr, styles.Warning.Render("Store not opened: newer version declined."))
		return 0
	}
	fmt.Fprintln(stderr, styles.Error.Render("Error: ")+err.Error())
	return 1
}
