package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/roastery/internal/llm"
	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/service"
	"github.com/alexanderramin/roastery/internal/storage"
)

// Messages shown to shop staff.
const (
	msgBadRequest      = "Ungültige Anfrage"
	msgNoFile          = "Keine Datei übermittelt"
	msgEmptyFile       = "Datei ist leer"
	msgNoExtension     = "Dateiendung konnte nicht ermittelt werden"
	msgImportDisabled  = "Import ist nicht konfiguriert"
	msgImportFailed    = "Import fehlgeschlagen"
	msgStorageDisabled = "Bildspeicher ist nicht konfiguriert"
	msgChatDisabled    = "Chat ist nicht verfügbar"
	msgChatFailed      = "Chat-Anfrage fehlgeschlagen"
	msgContentDisabled = "KI-Generator ist nicht konfiguriert"
	msgContentFailed   = "KI-Generierung fehlgeschlagen"
	msgInternal        = "Interner Fehler"
	msgNotFound        = "Nicht gefunden"
	msgLLMTimeout      = "Die Antwort hat zu lange gedauert"
)

func tooLarge(limit int64) string {
	if limit >= 1<<20 {
		return fmt.Sprintf("Datei ist zu groß (max. %dMB)", limit>>20)
	}
	return fmt.Sprintf("Datei ist zu groß (max. %d Bytes)", limit)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// statusFor maps service errors to a status and a client message. ok is
// false for errors the caller has to handle itself.
func statusFor(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "), true
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, msgNotFound, true
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, strings.TrimPrefix(err.Error(), service.ErrConflict.Error()+": "), true
	case errors.Is(err, storage.ErrEmptyFile):
		return http.StatusBadRequest, msgEmptyFile, true
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusBadRequest, tooLarge(storage.MaxImageBytes), true
	case errors.Is(err, storage.ErrMissingExtension):
		return http.StatusBadRequest, msgNoExtension, true
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusServiceUnavailable, msgStorageDisabled, true
	case errors.Is(err, llm.ErrDisabled), errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable, msgChatDisabled, true
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout, msgLLMTimeout, true
	}
	return http.StatusInternalServerError, msgInternal, false
}

// fail writes the mapped error response and records err on the context for
// the request log.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg, _ := statusFor(err)
	abort(c, status, msg)
}
