package generator

import (
	"context"
	"fmt"
	"io"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Writer io.Writer // Where to report each operation (defaults to io.Discard)
}

// Execute validates every operation, then applies them in order.
// Nothing is applied if any validation fails. In dry-run mode operations are
// only reported.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = io.Discard
	}

	for _, op := range ops {
		if err := op.Validate(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	prefix := "✓"
	if opts.DryRun {
		prefix = "✓ [DRY RUN]"
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("execution cancelled before %s: %w", op.Description(), err)
		}
		if !opts.DryRun {
			if err := op.Execute(ctx); err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
		}
		fmt.Fprintf(w, "%s %s\n", prefix, op.Description())
	}

	return nil
}
