// Package output provides styled terminal output for anchor-init.
//
// # Usage
//
//	output.Info("Converted project name to snake_case: my_program")
//	output.Action(`Running "anchor build"...`)
//	output.Success("anchor build completed.")
//	output.Error("anchor build failed: command failed with exit code 1")
//	output.Step("$ cd my_program")
//
// # Verbose Mode
//
//	output.SetVerbose(true)
//	output.Verbose("Using template directory: ./templates")
//
// # Styling
//
//   - Success: ✅ green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Action: 🔧 plain
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
//
// Output goes to stdout by default; tests redirect it with SetWriter.
package output
