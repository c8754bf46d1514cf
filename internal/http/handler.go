package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pageform/internal/state"
	"pageform/internal/view"
)

const pathPageTwoEvents = view.PathPageTwo + "/events"

// Handler wires the two pages and the profile API to the shared store.
type Handler struct {
	store       *state.Store
	debugFormat view.Format
	keepAlive   time.Duration
	logger      *logrus.Logger
}

func NewHandler(store *state.Store, logger *logrus.Logger, debugFormat view.Format, keepAlive time.Duration) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	if debugFormat == "" {
		debugFormat = view.FormatJSON
	}
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	return &Handler{
		store:       store,
		debugFormat: debugFormat,
		keepAlive:   keepAlive,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(templates)
	router.Use(requestLogger(h.logger))

	router.GET(view.PathPageOne, h.pageOne)
	router.POST(view.PathPageOne, h.submitPageOne)
	router.GET(view.PathPageTwo, h.pageTwo)
	router.GET(pathPageTwoEvents, h.pageTwoEvents)

	api := router.Group("/api")
	{
		api.GET("/profile", h.getProfile)
		api.PATCH("/profile", h.patchProfile)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	router.NoRoute(h.notFound)
}

// notFound sends unknown page requests back to the entry route.
func (h *Handler) notFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		loggerFrom(c).Debugf("unknown path %s, redirecting to %s", c.Request.URL.Path, view.PathPageOne)
		c.Redirect(http.StatusFound, view.PathPageOne)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
