package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pageform/internal/domain"
)

// flexText accepts a JSON string or number.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexText(n.String())
	return nil
}

type patchProfileRequest struct {
	FirstName *string   `json:"firstname"`
	LastName  *string   `json:"lastname"`
	Age       *flexText `json:"age"`
}

func (r patchProfileRequest) patch() domain.Profile {
	p := domain.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	if r.Age != nil {
		p.Age = domain.Text(string(*r.Age))
	}
	return p
}

type ProfileResponse struct {
	Profile  domain.Profile `json:"profile"`
	Revision uint64         `json:"revision"`
}

func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileResponse())
}

func (h *Handler) patchProfile(c *gin.Context) {
	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.Merge(req.patch())
	c.JSON(http.StatusOK, h.profileResponse())
}

func (h *Handler) profileResponse() ProfileResponse {
	profile, revision := h.store.Snapshot()
	return ProfileResponse{Profile: profile, Revision: revision}
}
