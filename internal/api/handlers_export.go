package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/security"
)

// ExportJSON streams the full snapshot. With a passphrase query parameter
// the payload is sealed before it leaves the process; the stored data stays
// plaintext either way.
func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	document, err := handler.exports.ExportJSON()
	if err != nil {
		return sendError(c, err)
	}
	if passphrase := c.Query("passphrase"); passphrase != "" {
		sealed, err := security.EncryptExport(passphrase, document)
		if err != nil {
			return sendError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="koe-export.bin"`)
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.Send(sealed)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="koe-export.json"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(document)
}

func (handler *Handler) ImportJSON(c *fiber.Ctx) error {
	raw := c.Body()
	if passphrase := c.Query("passphrase"); passphrase != "" {
		opened, err := security.DecryptExport(passphrase, raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		raw = opened
	}
	if err := handler.exports.ImportJSON(raw); err != nil {
		return sendError(c, err)
	}
	if err := handler.quickLog.Reseed(); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.exports.ClearAll(); err != nil {
		return sendError(c, err)
	}
	if err := handler.quickLog.Reseed(); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
