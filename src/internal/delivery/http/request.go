package http

import (
	"marketplace-service/src/internal/model"
	httpError "marketplace-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

func invalidBody(err error) error {
	errObj := httpError.NewBadRequest()
	errObj.Message = "invalid request body"
	errObj.Details = err.Error()
	return errObj
}

// uploads keeps the multipart files opened for one request.
type uploads struct {
	closers []func() error
}

// file opens the form file named field. A missing file yields nil so request
// validation reports it.
func (u *uploads) file(ctx *fiber.Ctx, field string) (*model.FileUpload, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil
	}
	content, err := header.Open()
	if err != nil {
		return nil, err
	}
	u.closers = append(u.closers, content.Close)
	return &model.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Content:     content,
	}, nil
}

func (u *uploads) close() {
	for _, c := range u.closers {
		_ = c()
	}
}
