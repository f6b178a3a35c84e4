// Package output delivers finished feed documents.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/renameio/v2"
)

type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(ctx context.Context, doc string) error {
	if _, err := io.WriteString(s.w, doc); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	return nil
}

// FileSink replaces the file at path atomically, so readers never see a partial feed.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Emit(ctx context.Context, doc string) error {
	pendingFile, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("failed to create pending feed file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			slog.Debug("Failed to clean up pending feed file", "path", s.path, "error", err)
		}
	}()

	if _, err := io.WriteString(pendingFile, doc); err != nil {
		return fmt.Errorf("failed to write feed file: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace feed file: %w", err)
	}

	slog.Debug("Feed written", "path", s.path, "bytes", len(doc))
	return nil
}
