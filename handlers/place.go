package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"travelworld/models"
	"travelworld/storage"
	"travelworld/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type PlaceAddRequest struct {
	Name         string   `form:"place_name" binding:"required,max=150"`
	District     string   `form:"district" binding:"max=100"`
	Description  string   `form:"description"`
	LocationLink string   `form:"location_link"`
	Types        []string `form:"type"`
	BestFrom     string   `form:"best_time_from" binding:"required"`
	BestTo       string   `form:"best_time_to" binding:"required"`
}

func regionURL(regionID uint64) string {
	return "/state/" + strconv.FormatUint(regionID, 10)
}

// PlaceAdd validates everything before the image is stored, so a rejected request writes nothing
func PlaceAdd(c *gin.Context, user *models.User) {
	regionID, ok := paramID(c, "state_id")
	if !ok {
		return
	}
	req := PlaceAddRequest{}
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bestTime, err := models.ParseMonthRange(req.BestFrom, req.BestTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	categories := append(splitValues(req.Types), c.PostFormArray("type[]")...)
	if err = models.ValidateCategories(categories); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err = models.RegionByID(regionID); errors.Is(err, models.ErrNotFound) {
		c.String(http.StatusNotFound, "State not found")
		return
	} else if err != nil {
		utils.Logger.Error("region get", zap.Error(err), zap.Uint64("region_id", regionID))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	store := storage.GetDefaultStorage()
	imagePath, err := storage.StoreUpload(store, file, storage.MediaPlace, maxUploadBytes())
	if err != nil {
		utils.Logger.Warn("place image", zap.Error(err), zap.String("file", file.Filename))
		c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	place := models.Place{
		RegionID:     regionID,
		Name:         req.Name,
		District:     req.District,
		Description:  utils.SanitizeHTML(req.Description),
		ImagePath:    imagePath,
		LocationLink: req.LocationLink,
		BestTime:     bestTime,
	}
	place.SetCategories(categories)
	if err = models.PlaceCreate(&place); err != nil {
		if cleanupErr := storage.DeleteMedia(store, imagePath); cleanupErr != nil {
			utils.Logger.Warn("place image cleanup", zap.Error(cleanupErr), zap.String("path", imagePath))
		}
		if errors.Is(err, models.ErrNotFound) {
			c.String(http.StatusNotFound, "State not found")
			return
		}
		utils.Logger.Error("place create", zap.Error(err), zap.Uint64("region_id", regionID))
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	utils.Logger.Info("place added",
		zap.Uint64("place_id", place.ID),
		zap.Uint64("region_id", regionID),
		zap.Uint64("user_id", user.ID),
	)
	c.Redirect(http.StatusFound, regionURL(regionID))
}

// PlaceDelete only deletes a place of the region named in the URL
func PlaceDelete(c *gin.Context, user *models.User) {
	placeID, ok := paramID(c, "place_id")
	if !ok {
		return
	}
	regionID, ok := paramID(c, "state_id")
	if !ok {
		return
	}
	place, err := models.PlaceDelete(placeID, regionID)
	if errors.Is(err, models.ErrNotFound) {
		c.String(http.StatusNotFound, "Place not found")
		return
	} else if err != nil {
		utils.Logger.Error("place delete", zap.Error(err), zap.Uint64("place_id", placeID))
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err = storage.DeleteMedia(storage.GetDefaultStorage(), place.ImagePath); err != nil {
		utils.Logger.Warn("place image cleanup", zap.Error(err), zap.String("path", place.ImagePath))
	}
	utils.Logger.Info("place deleted",
		zap.Uint64("place_id", placeID),
		zap.Uint64("region_id", regionID),
		zap.Uint64("user_id", user.ID),
	)
	c.Redirect(http.StatusFound, regionURL(regionID))
}
