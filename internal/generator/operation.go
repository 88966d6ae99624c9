package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and has
// no side effects.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create programs/demo/src/lib.rs (234 bytes)").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// MkdirOp creates a single directory.
type MkdirOp struct {
	Path string
	Mode fs.FileMode

	created bool
}

func (op *MkdirOp) Validate(ctx context.Context) error {
	return ensureAbsent(op.Path)
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	if err := os.Mkdir(op.Path, op.Mode); err != nil {
		return fmt.Errorf("creating directory %s: %w", op.Path, err)
	}
	op.created = true
	return nil
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create %s/", op.Path)
}

// WriteFileOp creates a new file with rendered content.
//
// Validation behavior:
//   - Rejects nil content (empty is OK)
//   - Rejects paths that already exist
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return ensureAbsent(op.Path)
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// CopyFileOp copies a template file byte for byte.
type CopyFileOp struct {
	Source  fs.FS
	SrcPath string // Slash-separated path inside Source
	Path    string // Destination path
	Mode    fs.FileMode
}

func (op *CopyFileOp) Validate(ctx context.Context) error {
	if _, err := fs.Stat(op.Source, op.SrcPath); err != nil {
		return fmt.Errorf("template file %s: %w", op.SrcPath, err)
	}
	return ensureAbsent(op.Path)
}

func (op *CopyFileOp) Execute(ctx context.Context) error {
	src, err := op.Source.Open(op.SrcPath)
	if err != nil {
		return fmt.Errorf("opening template file %s: %w", op.SrcPath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}

	dst, err := os.OpenFile(op.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, op.Mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying %s: %w", op.SrcPath, err)
	}
	return dst.Close()
}

func (op *CopyFileOp) Description() string {
	return fmt.Sprintf("Copy %s", op.Path)
}

func ensureAbsent(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}
