package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"travelworld/config"
	"travelworld/storage"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var (
	// Predefined errors
	DBError1Response           = Response{"DB Error 1"}
	DBError2Response           = Response{"DB Error 2"}
	DBError3Response           = Response{"DB Error 3"}
	AccountCreatedResponse     = MessageResponse{"Account created"}
	EmailExistsResponse        = MessageResponse{"Email exists"}
	LoginOKResponse            = MessageResponse{"Login successful"}
	InvalidCredentialsResponse = MessageResponse{"Invalid credentials"}
)

// paramID parses a numeric path parameter, answering 404 if it is not one
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

func maxUploadBytes() int64 {
	return int64(config.MAX_UPLOAD_MB) << 20
}

// uploadErrorStatus maps Media Intake failures to a response status
func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotAnImage), errors.Is(err, storage.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNoSpace):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
