package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

type packageRequest struct {
	Header string  `json:"header" binding:"required"`
	Cost   float64 `json:"cost"`
	Text1  string  `json:"text1"`
	Text2  string  `json:"text2"`
	Text3  string  `json:"text3"`
	Text4  string  `json:"text4"`
	Text5  string  `json:"text5"`
	Text6  string  `json:"text6"`
	Text7  string  `json:"text7"`
}

func (h handlers) createPackage(c *gin.Context) {
	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	created, err := h.deps.Packages.CreateHeader(c.Request.Context(), domain.PackageHeader{
		Header: req.Header,
		Cost:   req.Cost,
		Text1:  req.Text1,
		Text2:  req.Text2,
		Text3:  req.Text3,
		Text4:  req.Text4,
		Text5:  req.Text5,
		Text6:  req.Text6,
		Text7:  req.Text7,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h handlers) listPackages(c *gin.Context) {
	params := listParams(c)
	items, total, err := h.deps.Packages.ListHeaders(c.Request.Context(), params)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	paginated(c, items, total, params)
}

func (h handlers) getPackage(c *gin.Context) {
	header, err := h.deps.Packages.GetHeader(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, header)
}

func (h handlers) deletePackage(c *gin.Context) {
	if err := h.deps.Packages.DeleteHeader(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) importPackages(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	defer f.Close()

	count, err := h.deps.Import(c.Request.Context(), f)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

type packageItemRequest struct {
	HeaderID       string `json:"headerId" binding:"required"`
	Media          string `json:"media"`
	Link           string `json:"link"`
	Format         string `json:"format"`
	MonthlyTraffic string `json:"monthlyTraffic"`
	TurnaroundTime string `json:"turnaroundTime"`
}

func (h handlers) createPackageItem(c *gin.Context) {
	var req packageItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	created, err := h.deps.Packages.CreateItem(c.Request.Context(), domain.PackageItem{
		HeaderID:       req.HeaderID,
		Media:          req.Media,
		Link:           req.Link,
		Format:         req.Format,
		MonthlyTraffic: req.MonthlyTraffic,
		TurnaroundTime: req.TurnaroundTime,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h handlers) getPackageItem(c *gin.Context) {
	item, err := h.deps.Packages.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h handlers) deletePackageItem(c *gin.Context) {
	if err := h.deps.Packages.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
