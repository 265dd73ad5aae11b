package http

import (
	"github.com/gin-gonic/gin"

	"cartsync/internal/model"
	pkgErrors "cartsync/pkg/errors"
	"cartsync/pkg/response"
)

var errMissingID = pkgErrors.NewHTTPError(400, "id is required")

// ShareList godoc
// @Summary     Invite a collaborator
// @Description Resolves the invitee by email and grants edit or view access.
// @Tags        Sharing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string       true "List ID"
// @Param       body body shareListReq true "Invitee"
// @Success     200 {object} shareResp
// @Failure     404 {object} response.Resp "No user with that email"
// @Failure     409 {object} response.Resp "Already shared"
// @Router      /api/v1/lists/{id}/shares [POST]
func (h *handler) ShareList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	var req shareListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	req.ListID = c.Param("id")
	if req.ListID == "" {
		response.Error(c, errMissingID)
		return
	}

	created, err := h.uc.ShareList(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ShareList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newShareResp(created))
}

// GetSharedUsers godoc
// @Summary     List collaborators
// @Description Shares of a list, earliest grant first.
// @Tags        Sharing
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {array} shareResp
// @Router      /api/v1/lists/{id}/shares [GET]
func (h *handler) GetSharedUsers(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	listID := c.Param("id")
	if listID == "" {
		response.Error(c, errMissingID)
		return
	}

	shares, err := h.uc.GetSharedUsers(ctx, sc, listID)
	if err != nil {
		h.l.Errorf(ctx, "uc.GetSharedUsers: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newShareResps(shares))
}

// UpdateSharePermission godoc
// @Summary     Change a collaborator's access level
// @Tags        Sharing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string        true "Share ID"
// @Param       body body permissionReq true "New permission"
// @Success     200 {object} shareResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/shares/{id} [PUT]
func (h *handler) UpdateSharePermission(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID)
		return
	}

	var req permissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.uc.UpdateSharePermission(ctx, sc, id, model.Permission(req.Permission))
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateSharePermission: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newShareResp(updated))
}

// RemoveShare godoc
// @Summary     Revoke a collaborator's access
// @Tags        Sharing
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Share ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/shares/{id} [DELETE]
func (h *handler) RemoveShare(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID)
		return
	}

	if err := h.uc.RemoveShare(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.RemoveShare: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// LeaveList godoc
// @Summary     Leave a shared list
// @Description Removes the caller's own share.
// @Tags        Sharing
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not shared with you"
// @Router      /api/v1/lists/{id}/leave [POST]
func (h *handler) LeaveList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	listID := c.Param("id")
	if listID == "" {
		response.Error(c, errMissingID)
		return
	}

	if err := h.uc.LeaveList(ctx, sc, listID); err != nil {
		h.l.Errorf(ctx, "uc.LeaveList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// GetSharedWithMe godoc
// @Summary     Lists shared with me
// @Tags        Sharing
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} sharedListResp
// @Router      /api/v1/shares/with-me [GET]
func (h *handler) GetSharedWithMe(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	lists, err := h.uc.GetSharedWithMe(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.GetSharedWithMe: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSharedListResps(lists))
}
