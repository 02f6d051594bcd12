package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// crud is the method set of a plain catalog resource service.
type crud[T, L, In any] struct {
	list   func(context.Context) (L, error)
	get    func(context.Context, string) (T, error)
	create func(context.Context, In) (T, error)
	update func(context.Context, string, In) (T, error)
	remove func(context.Context, string) error
}

func mountCRUD[T, L, In any](g *gin.RouterGroup, h *handler, r crud[T, L, In]) {
	g.GET("", func(c *gin.Context) {
		items, err := r.list(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
	g.GET("/:id", func(c *gin.Context) {
		item, err := r.get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})
	g.POST("", func(c *gin.Context) {
		var in In
		if !h.bind(c, &in) {
			return
		}
		item, err := r.create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
	g.PUT("/:id", func(c *gin.Context) {
		var in In
		if !h.bind(c, &in) {
			return
		}
		item, err := r.update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})
	g.DELETE("/:id", func(c *gin.Context) {
		if err := r.remove(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// bind decodes the JSON body. Field rules are checked by the services.
func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}
