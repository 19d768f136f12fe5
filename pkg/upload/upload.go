// Package upload implements the multi-file PDF upload flow: selection
// validation, concurrent per-file transfers, and the shared progress figure.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// ErrNothingToUpload is the validation failure for a submission without a
// title or without any (valid) file. It is raised before any network call.
var ErrNothingToUpload = errors.New("please provide a title and select at least one PDF file")

// ErrUploadFailed is the generic failure surfaced when one or more transfers
// did not complete. Per-file causes are logged, not merged into this message.
var ErrUploadFailed = errors.New("failed to upload one or more documents")

// MsgOnlyPDF is the validation message surfaced when a selection contained
// non-PDF files.
const MsgOnlyPDF = "Only PDF files are allowed"

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// File is one selected file: a name and its content.
type File struct {
	Name string
	Data []byte
}

// IsPDF reports whether f looks like a PDF: a .pdf extension and, when
// content is present, the %PDF- header.
func (f File) IsPDF() bool {
	if !strings.EqualFold(filepath.Ext(f.Name), ".pdf") {
		return false
	}
	if len(f.Data) > 0 && !bytes.HasPrefix(f.Data, pdfMagic) {
		return false
	}
	return true
}

// ValidateSelection splits a selection into the PDFs to queue and a
// validation message. Non-PDF entries are dropped without blocking the
// valid remainder; message is MsgOnlyPDF when anything was dropped, empty
// otherwise.
func ValidateSelection(files []File) (valid []File, message string) {
	for _, f := range files {
		if f.IsPDF() {
			valid = append(valid, f)
		}
	}
	if len(valid) != len(files) {
		message = MsgOnlyPDF
	}
	return valid, message
}

// Batch uploads a set of already-validated PDFs under one shared title.
type Batch struct {
	api *client.Client
	log zerolog.Logger

	// progress is the most recently reported per-file percentage. The
	// transfers race to write it, last write wins; this mirrors the
	// original UI and is a known limitation, not an aggregate.
	progress atomic.Int32
}

// NewBatch creates an upload batch against api.
func NewBatch(api *client.Client, log zerolog.Logger) *Batch {
	return &Batch{
		api: api,
		log: log.With().Str("component", "upload").Logger(),
	}
}

// Progress returns the shared progress percentage of the running batch.
func (b *Batch) Progress() int {
	return int(b.progress.Load())
}

// Run uploads every file concurrently under title and waits for all
// transfers. It returns the created documents in selection order only when
// every file succeeded; any per-file failure yields ErrUploadFailed and no
// partial result. An empty title or file set fails validation up front.
func (b *Batch) Run(ctx context.Context, title string, files []File) ([]*models.Document, error) {
	if strings.TrimSpace(title) == "" || len(files) == 0 {
		return nil, ErrNothingToUpload
	}

	b.progress.Store(0)

	docs := make([]*models.Document, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			doc, err := b.api.UploadDocument(ctx, title, f.Name, bytes.NewReader(f.Data), func(percent int) {
				b.progress.Store(int32(percent))
			})
			if err != nil {
				b.log.Error().Err(err).Str("file", f.Name).Msg("upload failed")
				errs[i] = fmt.Errorf("upload %s: %w", f.Name, err)
				return
			}
			docs[i] = doc
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, ErrUploadFailed
		}
	}

	b.log.Info().Int("count", len(docs)).Msg("batch uploaded")
	return docs, nil
}
