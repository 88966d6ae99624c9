// Package generator materializes an Anchor project from a template tree.
//
// # Overview
//
// Generation happens in three stages:
//
//   - A Context carries the substitution values (projectName, programId)
//   - A Renderer compiles names and file contents against the Context
//   - A Materializer walks the template tree, plans one Operation per entry,
//     then validates and executes the plan
//
// # Template Syntax
//
// Templates use a Handlebars-like surface on top of text/template. Context
// keys and helpers are plain identifiers:
//
//	declare_id!("{{programId}}");
//	pub mod {{projectName}} { ... }
//	pub struct {{PascalCase projectName}}Account { ... }
//
// Dot access ({{.projectName}}) works too. Referencing a key the Context does
// not define is a TemplateError.
//
// # Naming Rules
//
// Every entry name is passed through RenderName, which applies in order:
//
//  1. Template rendering
//  2. Marker stripping: "lib.rs.hbs" becomes "lib.rs" and is flagged templated
//  3. Sentinel replacement: "anchor_init" becomes the project name, both as a
//     whole segment and as a substring ("anchor_init_client" → "demo_client")
//  4. Dotfile rename: "gitignore" becomes ".gitignore"
//
// Templated files have their content rendered. All other files are copied
// byte for byte.
package generator
