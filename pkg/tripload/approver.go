package tripload

import "context"

// Approver handles user interaction for approval workflows,
// particularly before dropping and recreating an existing table.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the table name for confirmation
//   - AutoApprover: Approves with a logged warning (non-interactive runs)
type Approver interface {
	// RequestApproval prompts for confirmation before dropping and
	// recreating a table.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - tableName: Name of the table to be overwritten
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, tableName string) (bool, error)
}
