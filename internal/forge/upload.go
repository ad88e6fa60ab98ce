package forge

import (
	"context"

	"github.com/amishk599/careerforge/internal/model"
)

// UploadStatus is what the upload panel shows.
type UploadStatus int

const (
	UploadIdle UploadStatus = iota
	Uploading
	UploadSucceeded
)

func (s UploadStatus) String() string {
	switch s {
	case Uploading:
		return "uploading"
	case UploadSucceeded:
		return "success"
	default:
		return "idle"
	}
}

// UploadOutcome completes a ConfirmUpload task.
type UploadOutcome struct {
	ticket uint64
	Err    error
}

func (UploadOutcome) outcome() {}

// UploadController owns the selected resume and its upload lifecycle.
type UploadController struct {
	file *model.SelectedFile
	op   Op[struct{}]
	next func() uint64
}

// SelectFile replaces the current selection. The upload status is left alone:
// a previous success stays visible until the next upload.
func (c *UploadController) SelectFile(file model.SelectedFile) {
	c.file = &file
}

// File returns the selected file, if any.
func (c *UploadController) File() (model.SelectedFile, bool) {
	if c.file == nil {
		return model.SelectedFile{}, false
	}
	return *c.file, true
}

// Status maps the operation phase onto idle/uploading/success. A failed upload
// reads as idle so the user can retry.
func (c *UploadController) Status() UploadStatus {
	switch c.op.Phase {
	case PhasePending:
		return Uploading
	case PhaseSucceeded:
		return UploadSucceeded
	default:
		return UploadIdle
	}
}

// Op exposes the raw operation state.
func (c *UploadController) Op() Op[struct{}] {
	return c.op
}

// CanConfirm reports whether ConfirmUpload would issue a request.
func (c *UploadController) CanConfirm() bool {
	return c.file != nil && !c.op.Pending()
}

// confirm moves to uploading and returns the upload task, or nil when there is
// no file or an upload is already running.
func (c *UploadController) confirm(uploader model.ResumeUploader) Task {
	if !c.CanConfirm() {
		return nil
	}
	ticket := c.next()
	c.op.Phase = PhasePending
	c.op.Err = nil
	c.op.ticket = ticket

	file := *c.file
	return func(ctx context.Context) Outcome {
		return UploadOutcome{ticket: ticket, Err: uploader.UploadResume(ctx, file)}
	}
}

// apply records the upload result. It returns false for an outcome that no
// longer owns the pending phase.
func (c *UploadController) apply(o UploadOutcome) bool {
	if o.ticket == 0 || o.ticket != c.op.ticket {
		return false
	}
	c.op.ticket = 0
	if o.Err != nil {
		c.op.Phase = PhaseFailed
		c.op.Err = o.Err
		return true
	}
	c.op.Phase = PhaseSucceeded
	c.op.Err = nil
	return true
}
