package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// MaterializeOptions configures a Materialize call
type MaterializeOptions struct {
	DryRun bool
	Writer io.Writer // Receives one line per operation
}

// Materializer renders a template tree into a new destination directory.
type Materializer struct {
	renderer *Renderer
}

// NewMaterializer creates a materializer that resolves names and content with r.
func NewMaterializer(r *Renderer) *Materializer {
	return &Materializer{renderer: r}
}

// Materialize writes the rendered copy of src to dest.
//
// dest must not exist; this is checked once, before anything is written. The
// whole tree is planned first, so a TemplateError leaves the disk untouched.
// If an operation fails after dest was created by this call, the partially
// written dest is removed. The executed plan is returned.
func (m *Materializer) Materialize(ctx context.Context, src fs.FS, dest string, opts MaterializeOptions) ([]Operation, error) {
	if _, err := os.Lstat(dest); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetExists, dest)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", dest, err)
	}

	ops, err := m.Plan(src, dest)
	if err != nil {
		return nil, err
	}

	if err := m.execute(ctx, ops, opts); err != nil {
		return nil, err
	}
	return ops, nil
}

// execute runs a plan produced by Plan. A dest that appeared after planning
// fails validation and is left alone.
func (m *Materializer) execute(ctx context.Context, ops []Operation, opts MaterializeOptions) error {
	err := Execute(ctx, ops, ExecuteOptions{DryRun: opts.DryRun, Writer: opts.Writer})
	if err == nil {
		return nil
	}
	if root, ok := ops[0].(*MkdirOp); ok && root.created {
		_ = os.RemoveAll(root.Path)
	}
	return err
}

// Plan resolves every entry of src into an ordered list of operations rooted
// at dest. Parents always precede their children.
func (m *Materializer) Plan(src fs.FS, dest string) ([]Operation, error) {
	ops := []Operation{&MkdirOp{Path: dest, Mode: 0755}}
	seen := make(map[string]string)

	if err := m.plan(src, ".", dest, &ops, seen); err != nil {
		return nil, err
	}
	return ops, nil
}

func (m *Materializer) plan(src fs.FS, srcDir, destDir string, ops *[]Operation, seen map[string]string) error {
	entries, err := fs.ReadDir(src, srcDir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		srcPath := path.Join(srcDir, entry.Name())

		name, err := RenderName(entry.Name(), m.renderer)
		if err != nil {
			var te *TemplateError
			if errors.As(err, &te) {
				te.Name = srcPath
			}
			return err
		}

		destPath := filepath.Join(destDir, name.Final)
		if prev, dup := seen[destPath]; dup {
			return &TemplateError{Name: srcPath, Err: fmt.Errorf("renders to %s, already produced by %s", destPath, prev)}
		}
		seen[destPath] = srcPath

		switch {
		case entry.IsDir():
			*ops = append(*ops, &MkdirOp{Path: destPath, Mode: 0755})
			if err := m.plan(src, srcPath, destPath, ops, seen); err != nil {
				return err
			}

		case entry.Type().IsRegular():
			mode, err := fileMode(entry)
			if err != nil {
				return err
			}

			if !name.Templated {
				*ops = append(*ops, &CopyFileOp{Source: src, SrcPath: srcPath, Path: destPath, Mode: mode})
				continue
			}

			raw, err := fs.ReadFile(src, srcPath)
			if err != nil {
				return fmt.Errorf("reading template %s: %w", srcPath, err)
			}
			content, err := m.renderer.Render(srcPath, raw)
			if err != nil {
				return err
			}
			*ops = append(*ops, &WriteFileOp{Path: destPath, Content: content, Mode: mode})

		default:
			// Symlinks and special files are not part of a template tree.
		}
	}

	return nil
}

// fileMode keeps the executable bit of a template file.
func fileMode(entry fs.DirEntry) (fs.FileMode, error) {
	info, err := entry.Info()
	if err != nil {
		return 0, err
	}
	if info.Mode().Perm()&0111 != 0 {
		return 0755, nil
	}
	return 0644, nil
}
