package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// AutoApprover implements the Approver interface for unattended runs.
// It approves immediately after printing a notice, so piped and scheduled
// invocations never block waiting for a confirmation that cannot arrive.
type AutoApprover struct {
	verbose bool
	output  io.Writer
}

// NewAutoApprover creates a new AutoApprover writing to stderr.
func NewAutoApprover(verbose bool) tripload.Approver {
	return &AutoApprover{verbose: verbose, output: os.Stderr}
}

// RequestApproval prints a notice and approves.
func (a *AutoApprover) RequestApproval(ctx context.Context, tableName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "⚠️  Table '%s' already exists and will be dropped (non-interactive run).\n", tableName)
	return true, nil
}

// Verify AutoApprover implements the Approver interface at compile time
var _ tripload.Approver = (*AutoApprover)(nil)
