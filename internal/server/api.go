package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is returned by handlers and rendered as {"error": Message}.
type Error struct {
	Code    int
	Message string
}

func badRequest(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// HandlerFunc returns a value to be rendered as JSON, or an Error.
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// ResolveEndpoint adapts h to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// Module attaches a set of endpoints to a router group.
type Module interface {
	Mount(g *gin.RouterGroup)
}

// ModuleFunc lets a plain function act as a Module.
type ModuleFunc func(g *gin.RouterGroup)

func (f ModuleFunc) Mount(g *gin.RouterGroup) { f(g) }

// MountGroup mounts modules under prefix with optional middleware.
func MountGroup(r *gin.Engine, prefix string, middleware []gin.HandlerFunc, modules ...Module) {
	grp := r.Group(prefix)
	for _, mw := range middleware {
		grp.Use(mw)
	}
	for _, m := range modules {
		m.Mount(grp)
	}
}
