// Package exec runs external toolchain commands for a generated project.
//
// Commands are full command lines handed to the platform shell, so scripts
// like "yarn run deploy:local" or "git add . && git commit -m ..." work as
// typed. Output is streamed to the console while it is produced and buffered
// in full for later inspection:
//
//	executor := exec.NewExecutor(nil)
//	res, err := executor.Run(ctx, "anchor build", projectDir)
//	if err != nil {
//	    var cmdErr *exec.CommandError
//	    if errors.As(err, &cmdErr) {
//	        fmt.Println(cmdErr.ExitCode, cmdErr.Output)
//	    }
//	}
//
// RunWithSpinner captures instead of streaming and shows a spinner; the
// captured output is replayed only when the command fails.
//
// Each call blocks until the process exits. No timeout is applied; the context
// is honored if the caller cancels it.
package exec
