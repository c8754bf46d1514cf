package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageform/internal/domain"
	"pageform/internal/view"
)

// pageOneForm binds only the fields present in the submission; a field
// sent empty is kept as "".
type pageOneForm struct {
	FirstName *string `form:"firstname"`
	LastName  *string `form:"lastname"`
	Age       *string `form:"age"`
}

func (f pageOneForm) patch() domain.Profile {
	return domain.Profile{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Age:       f.Age,
	}
}

func (h *Handler) pageOne(c *gin.Context) {
	c.HTML(http.StatusOK, "page_one.html", gin.H{
		"Title":  "Page One",
		"Fields": view.PageOne(h.store.Read()),
	})
}

func (h *Handler) submitPageOne(c *gin.Context) {
	var form pageOneForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.Merge(form.patch())
	c.Redirect(http.StatusSeeOther, view.PathPageTwo)
}

func (h *Handler) pageTwo(c *gin.Context) {
	summary, err := view.NewSummary(h.store.Read(), h.debugFormat)
	if err != nil {
		loggerFrom(c).Errorf("render page two: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "page_two.html", gin.H{
		"Title":      "Page Two",
		"Summary":    summary,
		"EventsPath": pathPageTwoEvents,
	})
}
