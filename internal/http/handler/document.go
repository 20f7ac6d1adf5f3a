package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kycintake/internal/service"
)

func writeDocumentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidContentID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid content identifier")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrDocumentsUnavailable):
		return writeError(c, fiber.StatusNotImplemented, "NOT_SUPPORTED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// originalFilename finds the name a document was uploaded with. Object
// stores differ in how they case user metadata keys.
func originalFilename(meta map[string]string) string {
	for k, v := range meta {
		if strings.EqualFold(k, "original-filename") {
			return v
		}
	}
	return ""
}

// DownloadDocument streams an archived document.
//
// @Summary  Download document
// @Tags     kyc
// @Produce  octet-stream
// @Param    cid  path string true "Content identifier"
// @Success  200 {file} binary
// @Failure  404 {object} errorPayload
// @Router   /kyc/documents/{cid} [get]
func DownloadDocument(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.OpenDocument(c.UserContext(), c.Params("cid"))
		if err != nil {
			return writeDocumentError(c, err)
		}

		if name := originalFilename(info.Metadata); name != "" {
			c.Attachment(name)
		}
		ct := info.ContentType
		if ct == "" {
			ct = defaultContentType
		}
		c.Set(fiber.HeaderContentType, ct)
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}

// DocumentURL returns a pre-signed download URL for an archived document.
//
// @Summary  Pre-signed document URL
// @Tags     kyc
// @Produce  json
// @Param    cid  path string true "Content identifier"
// @Success  200 {object} map[string]string
// @Failure  404 {object} errorPayload
// @Router   /kyc/documents/{cid}/url [get]
func DocumentURL(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.PresignDocument(c.UserContext(), c.Params("cid"))
		if err != nil {
			return writeDocumentError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
