package handlers

import (
	"errors"
	"net/http"
	"strings"
	"travelworld/models"
	"travelworld/storage"
	"travelworld/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type RegionCreateRequest struct {
	Name        string `form:"state_name" binding:"required,max=100"`
	Description string `form:"state_description"`
}

func RegionList(c *gin.Context, user *models.User) {
	search := c.Query("search")
	regions, err := models.RegionList(search)
	if err != nil {
		utils.Logger.Error("region list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.HTML(http.StatusOK, "national.tmpl", gin.H{
		"user":    user,
		"regions": regions,
		"search":  search,
	})
}

func RegionCreate(c *gin.Context, user *models.User) {
	req := RegionCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	file, err := c.FormFile("state_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state_image is required"})
		return
	}
	store := storage.GetDefaultStorage()
	imagePath, err := storage.StoreUpload(store, file, storage.MediaRegion, maxUploadBytes())
	if err != nil {
		utils.Logger.Warn("region image", zap.Error(err), zap.String("file", file.Filename))
		c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	region, err := models.RegionCreate(req.Name, utils.SanitizeHTML(req.Description), imagePath)
	if err != nil {
		utils.Logger.Error("region create", zap.Error(err))
		if err = storage.DeleteMedia(store, imagePath); err != nil {
			utils.Logger.Warn("region image cleanup", zap.Error(err), zap.String("path", imagePath))
		}
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	utils.Logger.Info("region created", zap.Uint64("region_id", region.ID), zap.Uint64("user_id", user.ID))
	c.Redirect(http.StatusFound, "/national")
}

// RegionDetails shows a region with its places narrowed by the search, type and month query parameters
func RegionDetails(c *gin.Context, user *models.User) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	region, err := models.RegionByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.String(http.StatusNotFound, "State not found")
		return
	} else if err != nil {
		utils.Logger.Error("region get", zap.Error(err), zap.Uint64("region_id", id))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	filter := models.PlaceFilter{
		RegionID:   region.ID,
		Search:     c.Query("search"),
		Categories: splitValues(c.QueryArray("type")),
		Month:      c.Query("month"),
	}
	places, err := models.PlaceList(filter)
	if err != nil {
		utils.Logger.Error("place list", zap.Error(err), zap.Uint64("region_id", id))
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	categories, err := models.CategoryList(region.ID)
	if err != nil {
		utils.Logger.Error("category list", zap.Error(err), zap.Uint64("region_id", id))
		c.JSON(http.StatusInternalServerError, DBError3Response)
		return
	}
	selected := map[string]bool{}
	for _, name := range models.NormalizeCategories(filter.Categories) {
		selected[name] = true
	}
	c.HTML(http.StatusOK, "state.tmpl", gin.H{
		"user":       user,
		"region":     region,
		"places":     places,
		"categories": categories,
		"selected":   selected,
		"filter":     filter,
		"months":     models.MonthNames(),
	})
}

// RegionDelete removes a region with all of its places
func RegionDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	region, err := models.RegionDelete(id)
	if errors.Is(err, models.ErrNotFound) {
		c.String(http.StatusNotFound, "State not found")
		return
	} else if err != nil {
		utils.Logger.Error("region delete", zap.Error(err), zap.Uint64("region_id", id))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	store := storage.GetDefaultStorage()
	paths := []string{region.ImagePath}
	for _, p := range region.Places {
		paths = append(paths, p.ImagePath)
	}
	for _, p := range paths {
		if err = storage.DeleteMedia(store, p); err != nil {
			utils.Logger.Warn("media cleanup", zap.Error(err), zap.String("path", p))
		}
	}
	utils.Logger.Info("region deleted",
		zap.Uint64("region_id", id),
		zap.Int("places", len(region.Places)),
		zap.Uint64("user_id", user.ID),
	)
	c.Redirect(http.StatusFound, "/national")
}

// splitValues accepts both repeated parameters and comma separated lists
func splitValues(values []string) (result []string) {
	for _, v := range values {
		result = append(result, strings.Split(v, ",")...)
	}
	return
}
