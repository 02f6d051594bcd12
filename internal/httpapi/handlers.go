package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/flavorwheel"
	"github.com/alexanderramin/roastery/internal/llm"
	"github.com/alexanderramin/roastery/internal/service"
)

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

// flavorWheel renders the annotated tree. highlight and highlightId may
// repeat; coffee takes a slug, coffeeId an id.
func (h *handler) flavorWheel(c *gin.Context) {
	res, err := h.Flavors.Wheel(c.Request.Context(), service.WheelRequest{
		Highlight: flavorwheel.Highlight{
			Names: c.QueryArray("highlight"),
			IDs:   c.QueryArray("highlightId"),
		},
		CoffeeSlug:          c.Query("coffee"),
		CoffeeID:            c.Query("coffeeId"),
		AlwaysShowTopLabels: queryBool(c, "topLabels"),
		Layout:              queryBool(c, "layout"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) listCoffees(c *gin.Context) {
	coffees, err := h.Coffees.List(c.Request.Context(), domain.CoffeeFilter{
		RegionID:     c.Query("region"),
		RoastLevel:   c.Query("roast"),
		FlavorNoteID: c.Query("flavor"),
		Query:        c.Query("q"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coffees)
}

func (h *handler) getCoffee(c *gin.Context) {
	detail, err := h.Coffees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handler) getCoffeeBySlug(c *gin.Context) {
	detail, err := h.Coffees.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handler) createCoffee(c *gin.Context) {
	var in service.CoffeeInput
	if !h.bind(c, &in) {
		return
	}
	detail, err := h.Coffees.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *handler) updateCoffee(c *gin.Context) {
	var in service.CoffeeInput
	if !h.bind(c, &in) {
		return
	}
	detail, err := h.Coffees.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handler) deleteCoffee(c *gin.Context) {
	if err := h.Coffees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, msgNoFile)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	url, err := h.Images.Upload(c.Request.Context(), service.UploadInput{
		Folder:      c.PostForm("folder"),
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *handler) deleteImage(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if !h.bind(c, &req) {
		return
	}
	if req.URL == "" {
		abort(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	if err := h.Images.Delete(c.Request.Context(), req.URL); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) chat(c *gin.Context) {
	var req service.ChatRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.Chat.Chat(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		if status, msg, ok := statusFor(err); ok {
			abort(c, status, msg)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgChatFailed, "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generateContent drafts coffee copy for the admin forms.
func (h *handler) generateContent(c *gin.Context) {
	var in service.GenerateContentInput
	if !h.bind(c, &in) {
		return
	}
	out, err := h.Content.Generate(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, llm.ErrDisabled) {
			abort(c, http.StatusServiceUnavailable, msgContentDisabled)
			return
		}
		if status, msg, ok := statusFor(err); ok {
			abort(c, status, msg)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgContentFailed, "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
