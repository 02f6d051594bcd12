package httpapi

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/roastery/internal/service"
)

// multipartSlack is allowed on top of the file limit for form boundaries
// and headers.
const multipartSlack = 1 << 20

// importCSV accepts a CSV or XLSX product export in the "file" field. Row
// failures are part of a 200 response; only setup failures are errors.
func (h *handler) importCSV(c *gin.Context) {
	if h.Import == nil {
		abort(c, http.StatusInternalServerError, msgImportDisabled)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			abort(c, http.StatusBadRequest, tooLarge(h.MaxUploadBytes))
			return
		}
		abort(c, http.StatusBadRequest, msgNoFile)
		return
	}
	switch {
	case fh.Size == 0:
		abort(c, http.StatusBadRequest, msgEmptyFile)
		return
	case fh.Size > h.MaxUploadBytes:
		abort(c, http.StatusBadRequest, tooLarge(h.MaxUploadBytes))
		return
	}

	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, msgImportFailed)
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	var result *service.ImportResult
	if strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		result, err = h.Import.ImportXLSX(ctx, f, nil)
	} else {
		result, err = h.Import.ImportCSV(ctx, f, nil)
	}
	if err != nil {
		_ = c.Error(err)
		msg := msgImportFailed
		switch {
		case errors.Is(err, service.ErrImportNotConfigured):
			msg = msgImportDisabled
		case err.Error() != "":
			msg = err.Error()
		}
		abort(c, http.StatusInternalServerError, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"successCount": result.SuccessCount,
		"errorCount":   result.ErrorCount,
		"errors":       result.Errors,
	})
}
