package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "cartsync/pkg/errors"
)

var errMissingID = pkgErrors.NewHTTPError(400, "id is required")

func pathID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errMissingID
	}
	return id, nil
}

func (h *handler) processCreateListReq(c *gin.Context) (createListReq, error) {
	var req createListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processUpdateListReq(c *gin.Context) (updateListReq, error) {
	var req updateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	id, err := pathID(c)
	if err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (h *handler) processAddItemReq(c *gin.Context) (addItemReq, error) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	id, err := pathID(c)
	if err != nil {
		return req, err
	}
	req.ListID = id
	return req, nil
}

func (h *handler) processQuickAddReq(c *gin.Context) (quickAddReq, error) {
	var req quickAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	id, err := pathID(c)
	if err != nil {
		return req, err
	}
	req.ListID = id
	return req, nil
}
