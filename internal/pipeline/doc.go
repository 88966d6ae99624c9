// Package pipeline drives the post-generation toolchain for a new project.
//
// A Plan lists the steps to run against the project directory. Steps run one
// at a time in canonical order through a Runner; the first failing step is
// classified for the user and every remaining step is skipped. Version
// control initialization is a separate phase that runs whether or not the
// pipeline aborted.
//
//	catalog := pipeline.DefaultCatalog(pipeline.CatalogConfig{PackageManager: "yarn"})
//	orch := pipeline.NewOrchestrator(catalog, exec.NewExecutor(nil))
//	report, err := orch.Run(ctx, pipeline.Plan{
//	    Steps:   pipeline.AllSteps(),
//	    InitGit: true,
//	    Dir:     "./my_program",
//	})
//
// Steps are chosen by a StepSource: FlagSource for the command line,
// InteractiveSource for a prompt.
package pipeline
