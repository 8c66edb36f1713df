package upload

import (
	"context"
	"io"

	"imagefeed/pkg/client"

	"go.uber.org/zap"
)

type Poster interface {
	Upload(ctx context.Context, req client.UploadRequest) (string, error)
}

// Form carries the entered upload fields. On failure the caller keeps the
// values so the user can retry without re-entering them.
type Form struct {
	FileName    string
	File        io.Reader
	Name        string
	Description string
	Tags        string
}

func (f *Form) validate() []*FieldError {
	var fileErr *FieldError
	if f.File == nil {
		fileErr = &FieldError{Location: "form", Param: "image", Msg: "is required"}
	} else {
		fileErr = requireField("form", "image", f.FileName)
	}

	return mergeErrors(
		fileErr,
		requireField("form", "name", f.Name),
		requireField("form", "description", f.Description),
		requireField("form", "tags", f.Tags),
	)
}

// Coordinator submits new images. Only field presence is checked client-side;
// type and size limits belong to the server. On success the injected refresh
// callback re-issues the current feed query, which is how the new image
// appears — there is no optimistic insertion.
type Coordinator struct {
	api     Poster
	logger  *zap.SugaredLogger
	refresh func(ctx context.Context)
}

func NewCoordinator(api Poster, logger *zap.SugaredLogger, refresh func(ctx context.Context)) *Coordinator {
	if refresh == nil {
		refresh = func(context.Context) {}
	}

	return &Coordinator{api: api, logger: logger, refresh: refresh}
}

func (c *Coordinator) Submit(ctx context.Context, form Form) (string, error) {
	validationErrors := form.validate()
	if len(validationErrors) > 0 {
		return "", &ValidationError{Errors: validationErrors}
	}

	msg, err := c.api.Upload(ctx, client.UploadRequest{
		FileName:    form.FileName,
		File:        form.File,
		Name:        form.Name,
		Description: form.Description,
		Tags:        form.Tags,
	})
	if err != nil {
		c.logger.Errorf("upload %q: %v", form.Name, err)
		return "", err
	}

	c.refresh(ctx)
	return msg, nil
}
