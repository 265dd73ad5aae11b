package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"cartsync/internal/list"
	"cartsync/internal/model"
	"cartsync/pkg/response"
)

// FetchLists godoc
// @Summary     Fetch all lists
// @Description Refreshes and returns the merged view of owned and shared lists. Degrades to owned-only when the shared query fails.
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} fetchListsResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/lists [GET]
func (h *handler) FetchLists(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	output, err := h.uc.FetchLists(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.FetchLists: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newFetchListsResp(output))
}

// GetOwnedLists godoc
// @Summary     List owned trips
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} listResp
// @Router      /api/v1/lists/owned [GET]
func (h *handler) GetOwnedLists(c *gin.Context) {
	sc, ok := h.scope(c)
	if !ok {
		return
	}

	lists := h.uc.GetOwnedLists(c.Request.Context(), sc)
	out := make([]listResp, 0, len(lists))
	for _, l := range lists {
		out = append(out, newListResp(l, false))
	}
	response.OK(c, out)
}

// GetSharedLists godoc
// @Summary     List trips shared with me
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} listResp
// @Router      /api/v1/lists/shared [GET]
func (h *handler) GetSharedLists(c *gin.Context) {
	sc, ok := h.scope(c)
	if !ok {
		return
	}

	views := h.uc.GetSharedLists(c.Request.Context(), sc)
	out := make([]listResp, 0, len(views))
	for _, v := range views {
		out = append(out, newListResp(v.List, v.ReadOnly))
	}
	response.OK(c, out)
}

// GetTemplates godoc
// @Summary     List templates
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} listResp
// @Router      /api/v1/lists/templates [GET]
func (h *handler) GetTemplates(c *gin.Context) {
	sc, ok := h.scope(c)
	if !ok {
		return
	}

	tpls := h.uc.GetTemplates(c.Request.Context(), sc)
	out := make([]listResp, 0, len(tpls))
	for _, l := range tpls {
		out = append(out, newListResp(l, false))
	}
	response.OK(c, out)
}

// CreateList godoc
// @Summary     Create a list
// @Tags        Lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createListReq true "List data"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/lists [POST]
func (h *handler) CreateList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	req, err := h.processCreateListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.uc.CreateList(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListResp(created, false))
}

// UpdateList godoc
// @Summary     Update list metadata
// @Description Partial update of title, store and budget. Set clear_budget to remove the budget.
// @Tags        Lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string        true "List ID"
// @Param       body body updateListReq true "Fields to update"
// @Success     200 {object} listResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lists/{id} [PUT]
func (h *handler) UpdateList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	req, err := h.processUpdateListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.uc.UpdateList(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListResp(updated, false))
}

// DeleteList godoc
// @Summary     Delete a list
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lists/{id} [DELETE]
func (h *handler) DeleteList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.DeleteList(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// SetActiveList godoc
// @Summary     Activate a list
// @Description Makes the list the session's active one: loads items and swaps the realtime subscription.
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {object} activeListResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lists/{id}/activate [POST]
func (h *handler) SetActiveList(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.SetActiveList(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.SetActiveList: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newActiveListResp(output))
}

// Summary godoc
// @Summary     List aggregates
// @Description Running total, spent amount and budget health for a list.
// @Tags        Lists
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {object} summaryResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lists/{id}/summary [GET]
func (h *handler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Summary(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Summary: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSummaryResp(output))
}

// GetItemsByStatus godoc
// @Summary     Items in one status lane
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id     path  string true "List ID"
// @Param       status query string true "to_buy | in_cart | skipped"
// @Success     200 {array} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/lists/{id}/items [GET]
func (h *handler) GetItemsByStatus(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.uc.GetItemsByStatus(ctx, sc, id, model.ItemStatus(c.Query("status")))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetItemsByStatus: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResps(items))
}

// AddItem godoc
// @Summary     Add an item
// @Description Optimistic add: the returned item is pending until the durable write settles.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string     true "List ID"
// @Param       body body addItemReq true "Item data"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/lists/{id}/items [POST]
func (h *handler) AddItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	req, err := h.processAddItemReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.AddItem(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AddItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// QuickAdd godoc
// @Summary     Quick-add items from free text
// @Description Parses lines like "2x Milk $4.50" into items. One line, one item.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string      true "List ID"
// @Param       body body quickAddReq true "Free text"
// @Success     200 {array} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/lists/{id}/quick-add [POST]
func (h *handler) QuickAdd(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	req, err := h.processQuickAddReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.uc.QuickAdd(ctx, sc, list.QuickAddInput{ListID: req.ListID, Text: req.Text})
	if err != nil {
		h.l.Errorf(ctx, "uc.QuickAdd: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResps(items))
}

// ToggleItemStatus godoc
// @Summary     Toggle to_buy / in_cart
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/toggle [POST]
func (h *handler) ToggleItemStatus(c *gin.Context) {
	h.itemAction(c, h.uc.ToggleItemStatus)
}

// SkipItem godoc
// @Summary     Skip or un-skip an item
// @Description Skipping remembers the prior status; skipping again restores it.
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/skip [POST]
func (h *handler) SkipItem(c *gin.Context) {
	h.itemAction(c, h.uc.SkipItem)
}

// UpdateItemName godoc
// @Summary     Rename an item
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string    true "Item ID"
// @Param       body body renameReq true "New name"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/name [PUT]
func (h *handler) UpdateItemName(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.UpdateItemName(ctx, sc, id, req.Name)
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateItemName: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// UpdateItemQuantity godoc
// @Summary     Set item quantity
// @Description Quantities below 1 are rejected; deletion is explicit.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string      true "Item ID"
// @Param       body body quantityReq true "Absolute quantity"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/items/{id}/quantity [PUT]
func (h *handler) UpdateItemQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.UpdateItemQuantity(ctx, sc, id, req.Quantity)
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateItemQuantity: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// AdjustItemQuantity godoc
// @Summary     Adjust item quantity by delta
// @Description Saturates at 1; decrementing never deletes.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string    true "Item ID"
// @Param       body body adjustReq true "Quantity delta"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/quantity/adjust [POST]
func (h *handler) AdjustItemQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req adjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.AdjustItemQuantity(ctx, sc, id, req.Delta)
	if err != nil {
		h.l.Errorf(ctx, "uc.AdjustItemQuantity: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// UpdateItemPrice godoc
// @Summary     Record the paid price
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string   true "Item ID"
// @Param       body body priceReq true "Actual price"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/items/{id}/price [PUT]
func (h *handler) UpdateItemPrice(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req priceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.UpdateItemPrice(ctx, sc, id, req.ActualPrice)
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateItemPrice: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// SetItemTags godoc
// @Summary     Replace item tags
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string  true "Item ID"
// @Param       body body tagsReq true "Tags"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/tags [PUT]
func (h *handler) SetItemTags(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req tagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.SetItemTags(ctx, sc, id, req.Tags)
	if err != nil {
		h.l.Errorf(ctx, "uc.SetItemTags: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// ReorderItem godoc
// @Summary     Move an item to a new sort position
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string  true "Item ID"
// @Param       body body sortReq true "Sort position"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id}/sort [PUT]
func (h *handler) ReorderItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req sortReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.uc.ReorderItem(ctx, sc, id, req.SortOrder)
	if err != nil {
		h.l.Errorf(ctx, "uc.ReorderItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// DeleteItem godoc
// @Summary     Delete an item
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/items/{id} [DELETE]
func (h *handler) DeleteItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.DeleteItem(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// SaveAsTemplate godoc
// @Summary     Save a list as a template
// @Description Copies static item fields; runtime state is reset.
// @Tags        Templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string   true "List ID"
// @Param       body body titleReq false "Template title"
// @Success     200 {object} listResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/lists/{id}/save-template [POST]
func (h *handler) SaveAsTemplate(c *gin.Context) {
	h.templateAction(c, h.uc.SaveAsTemplate)
}

// CreateFromTemplate godoc
// @Summary     Instantiate a trip from a template
// @Description Every item starts over: to_buy, no actual price.
// @Tags        Templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string   true "Template ID"
// @Param       body body titleReq false "New list title"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Not a template"
// @Router      /api/v1/lists/templates/{id}/instantiate [POST]
func (h *handler) CreateFromTemplate(c *gin.Context) {
	h.templateAction(c, h.uc.CreateFromTemplate)
}

// itemAction runs a body-less item mutation keyed by path id.
func (h *handler) itemAction(c *gin.Context, fn func(ctx context.Context, sc model.Scope, itemID string) (model.ListItem, error)) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := fn(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc item action: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newItemResp(item))
}

// templateAction runs one of the two template lifecycle transitions.
func (h *handler) templateAction(c *gin.Context, fn func(ctx context.Context, sc model.Scope, id, title string) (model.ShoppingList, error)) {
	ctx := c.Request.Context()

	sc, ok := h.scope(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req titleReq
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, err)
			return
		}
	}

	out, err := fn(ctx, sc, id, req.Title)
	if err != nil {
		h.l.Errorf(ctx, "uc template action: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListResp(out, false))
}
