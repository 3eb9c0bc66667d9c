package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

// influencerView renames catalog fields for API consumers: name becomes
// influencer and subscribers becomes followers. Persistence keeps the
// original names.
type influencerView struct {
	ID         string    `json:"id"`
	Influencer string    `json:"influencer"`
	Handle     string    `json:"handle,omitempty"`
	Platform   string    `json:"platform"`
	Followers  int64     `json:"followers"`
	Price      float64   `json:"price"`
	Categories []string  `json:"categories,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toInfluencerView(in domain.Influencer) influencerView {
	return influencerView{
		ID:         in.ID,
		Influencer: in.Name,
		Handle:     in.Handle,
		Platform:   in.Platform,
		Followers:  in.Subscribers,
		Price:      in.Price,
		Categories: in.Categories,
		CreatedAt:  in.CreatedAt,
	}
}

type influencerRequest struct {
	Name       string   `json:"name" binding:"required"`
	Handle     string   `json:"handle"`
	Platform   string   `json:"platform" binding:"required"`
	Followers  int64    `json:"followers"`
	Price      float64  `json:"price"`
	Categories []string `json:"categories"`
}

func (h handlers) createInfluencer(c *gin.Context) {
	var req influencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	created, err := h.deps.Influencers.Create(c.Request.Context(), domain.Influencer{
		Name:        req.Name,
		Handle:      req.Handle,
		Platform:    req.Platform,
		Subscribers: req.Followers,
		Price:       req.Price,
		Categories:  req.Categories,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toInfluencerView(*created))
}

func (h handlers) listInfluencers(c *gin.Context) {
	params := listParams(c)
	items, total, err := h.deps.Influencers.List(c.Request.Context(), params)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	views := make([]influencerView, 0, len(items))
	for _, in := range items {
		views = append(views, toInfluencerView(in))
	}
	paginated(c, views, total, params)
}

func (h handlers) getInfluencer(c *gin.Context) {
	in, err := h.deps.Influencers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toInfluencerView(*in))
}

func (h handlers) updateInfluencer(c *gin.Context) {
	var req influencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	updated, err := h.deps.Influencers.Update(c.Request.Context(), domain.Influencer{
		ID:          c.Param("id"),
		Name:        req.Name,
		Handle:      req.Handle,
		Platform:    req.Platform,
		Subscribers: req.Followers,
		Price:       req.Price,
		Categories:  req.Categories,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toInfluencerView(*updated))
}

func (h handlers) deleteInfluencer(c *gin.Context) {
	if err := h.deps.Influencers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
