package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docanalytics/internal/model"
	"docanalytics/internal/service"
)

type uploadResponse struct {
	Message  string          `json:"message"`
	Document *model.Document `json:"document"`
}

type documentResponse struct {
	Document *model.Document `json:"document"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListDocuments returns stored documents.
//
// limit defaults to 0, which returns every document; q keeps only documents matching the keywords.
//
// @Summary  List documents
// @Tags     documents
// @Produce  json
// @Param    sort_by    query string false "title, upload_date or file_size" default(upload_date)
// @Param    sort_order query string false "asc or desc" default(desc)
// @Param    limit      query int    false "page size, 0 for all" default(0)
// @Param    offset     query int    false "items to skip" default(0)
// @Param    q          query string false "keyword filter"
// @Success  200 {object} service.DocumentListResult
// @Failure  400 {object} errorPayload
// @Router   /api/documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "0"))
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), service.ListParams{
			SortBy:    c.Query("sort_by", "upload_date"),
			SortOrder: c.Query("sort_order", "desc"),
			Limit:     limit,
			Offset:    offset,
			Query:     c.Query("q"),
		})
		if err != nil {
			return internalError(c)
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts a multipart file in the "file" field. Only PDF and DOCX are allowed.
//
// @Summary  Upload a document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "PDF or DOCX file"
// @Success  201 {object} uploadResponse
// @Failure  400 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Router   /api/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || fh.Filename == "" {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedFormat) {
				return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
					"file type not allowed, only PDF and DOCX files are supported")
			}
			return internalError(c)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			Message:  "Document uploaded and processed successfully",
			Document: doc,
		})
	}
}

// GetDocument returns one document.
//
// @Summary  Get a document
// @Tags     documents
// @Produce  json
// @Param    id path string true "document ID"
// @Success  200 {object} documentResponse
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/document/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return documentNotFound(c)
			}
			return internalError(c)
		}
		return c.JSON(documentResponse{Document: doc})
	}
}

// DownloadDocument streams the stored file as an attachment.
//
// @Summary  Download a document's file
// @Tags     documents
// @Produce  application/octet-stream
// @Param    id path string true "document ID"
// @Success  200 {file} file
// @Failure  404 {object} errorPayload
// @Router   /api/document/{id}/download [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		rc, doc, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return documentNotFound(c)
			}
			return internalError(c)
		}
		// fasthttp closes rc once the body is written.
		c.Attachment(doc.Filename)
		return c.SendStream(rc)
	}
}

// DeleteDocument removes the stored file and the record.
//
// @Summary  Delete a document
// @Tags     documents
// @Produce  json
// @Param    id path string true "document ID"
// @Success  200 {object} messageResponse
// @Failure  404 {object} errorPayload
// @Router   /api/document/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return invalidID(c)
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return documentNotFound(c)
			}
			return internalError(c)
		}
		return c.JSON(messageResponse{Message: "Document deleted successfully"})
	}
}

// ClassifyDocuments reclassifies every document that has extracted text.
//
// @Summary  Reclassify all documents
// @Tags     documents
// @Produce  json
// @Success  200 {object} service.ReclassifyResult
// @Router   /api/classify [post]
func ClassifyDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := docSvc.Reclassify(c.UserContext())
		if err != nil {
			return internalError(c)
		}
		return c.JSON(res)
	}
}

// ReprocessDocuments extracts every stored file again. Per-document failures are
// reported in the body and do not fail the request.
//
// @Summary  Reprocess all documents
// @Tags     documents
// @Produce  json
// @Success  200 {object} service.ReprocessResult
// @Router   /api/documents/reprocess [post]
func ReprocessDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := docSvc.Reprocess(c.UserContext())
		if err != nil {
			return internalError(c)
		}
		return c.JSON(res)
	}
}

func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func documentNotFound(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
}
