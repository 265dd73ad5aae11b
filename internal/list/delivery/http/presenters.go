package http

import (
	"time"

	"cartsync/internal/budget"
	"cartsync/internal/list"
	"cartsync/internal/model"
)

// --- Request DTOs ---

type createListReq struct {
	Title     string   `json:"title"      binding:"required,min=1,max=255"`
	StoreID   string   `json:"store_id"   binding:"omitempty,max=64"`
	StoreName string   `json:"store_name" binding:"omitempty,max=255"`
	Budget    *float64 `json:"budget"     binding:"omitempty,gte=0"`
}

func (r createListReq) toInput() list.CreateListInput {
	return list.CreateListInput{
		Title:     r.Title,
		StoreID:   r.StoreID,
		StoreName: r.StoreName,
		Budget:    r.Budget,
	}
}

type updateListReq struct {
	ID          string   `json:"-"` // populated from URI param
	Title       *string  `json:"title"        binding:"omitempty,min=1,max=255"`
	StoreID     *string  `json:"store_id"     binding:"omitempty,max=64"`
	StoreName   *string  `json:"store_name"   binding:"omitempty,max=255"`
	Budget      *float64 `json:"budget"       binding:"omitempty,gte=0"`
	ClearBudget bool     `json:"clear_budget"`
}

func (r updateListReq) toInput() list.UpdateListInput {
	return list.UpdateListInput{
		ID:          r.ID,
		Title:       r.Title,
		StoreID:     r.StoreID,
		StoreName:   r.StoreName,
		Budget:      r.Budget,
		ClearBudget: r.ClearBudget,
	}
}

type addItemReq struct {
	ListID         string   `json:"-"`
	Name           string   `json:"name"            binding:"required,min=1,max=255"`
	ProductID      string   `json:"product_id"      binding:"omitempty,max=64"`
	CategoryID     string   `json:"category_id"     binding:"omitempty,max=64"`
	Quantity       int      `json:"quantity"        binding:"omitempty,gte=1"`
	Unit           string   `json:"unit"            binding:"omitempty,max=32"`
	EstimatedPrice float64  `json:"estimated_price" binding:"omitempty,gte=0"`
	Tags           []string `json:"tags"`
}

func (r addItemReq) toInput() list.AddItemInput {
	return list.AddItemInput{
		ListID:         r.ListID,
		Name:           r.Name,
		ProductID:      r.ProductID,
		CategoryID:     r.CategoryID,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		EstimatedPrice: r.EstimatedPrice,
		Tags:           r.Tags,
	}
}

type quickAddReq struct {
	ListID string `json:"-"`
	Text   string `json:"text" binding:"required,min=1,max=4000"`
}

type renameReq struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type quantityReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

type adjustReq struct {
	Delta int `json:"delta" binding:"required"`
}

type priceReq struct {
	ActualPrice float64 `json:"actual_price" binding:"gte=0"`
}

type tagsReq struct {
	Tags []string `json:"tags"`
}

type sortReq struct {
	SortOrder int `json:"sort_order"`
}

type titleReq struct {
	Title string `json:"title" binding:"omitempty,max=255"`
}

// --- Response DTOs ---

type listResp struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Title             string    `json:"title"`
	StoreID           string    `json:"store_id,omitempty"`
	StoreName         string    `json:"store_name,omitempty"`
	IsTemplate        bool      `json:"is_template"`
	Budget            *float64  `json:"budget,omitempty"`
	ItemCount         int       `json:"item_count"`
	EstimatedTotal    float64   `json:"estimated_total"`
	CollaboratorCount int       `json:"collaborator_count"`
	ReadOnly          bool      `json:"read_only"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newListResp(l model.ShoppingList, readOnly bool) listResp {
	return listResp{
		ID:                l.ID,
		OwnerID:           l.OwnerID,
		Title:             l.Title,
		StoreID:           l.StoreID,
		StoreName:         l.StoreName,
		IsTemplate:        l.IsTemplate,
		Budget:            l.Budget,
		ItemCount:         l.ItemCount,
		EstimatedTotal:    l.EstimatedTotal,
		CollaboratorCount: l.CollaboratorCount,
		ReadOnly:          readOnly,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

type itemResp struct {
	ID             string    `json:"id"`
	ListID         string    `json:"list_id"`
	ProductID      string    `json:"product_id,omitempty"`
	Name           string    `json:"name"`
	CategoryID     string    `json:"category_id,omitempty"`
	Quantity       int       `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	EstimatedPrice float64   `json:"estimated_price"`
	ActualPrice    *float64  `json:"actual_price,omitempty"`
	Status         string    `json:"status"`
	Tags           []string  `json:"tags,omitempty"`
	SortOrder      int       `json:"sort_order"`
	Pending        bool      `json:"pending"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newItemResp(it model.ListItem) itemResp {
	return itemResp{
		ID:             it.ID,
		ListID:         it.ListID,
		ProductID:      it.ProductID,
		Name:           it.Name,
		CategoryID:     it.CategoryID,
		Quantity:       it.Quantity,
		Unit:           it.Unit,
		EstimatedPrice: it.EstimatedPrice,
		ActualPrice:    it.ActualPrice,
		Status:         string(it.Status),
		Tags:           it.Tags,
		SortOrder:      it.SortOrder,
		Pending:        it.Pending,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

func newItemResps(items []model.ListItem) []itemResp {
	out := make([]itemResp, 0, len(items))
	for _, it := range items {
		out = append(out, newItemResp(it))
	}
	return out
}

type fetchListsResp struct {
	Owned    []listResp `json:"owned"`
	Shared   []listResp `json:"shared"`
	Degraded bool       `json:"degraded"`
}

func (h *handler) newFetchListsResp(out list.FetchListsOutput) fetchListsResp {
	resp := fetchListsResp{
		Owned:    make([]listResp, 0, len(out.Owned)),
		Shared:   make([]listResp, 0, len(out.Shared)),
		Degraded: out.Degraded,
	}
	for _, l := range out.Owned {
		resp.Owned = append(resp.Owned, newListResp(l, false))
	}
	for _, sv := range out.Shared {
		resp.Shared = append(resp.Shared, newListResp(sv.List, sv.ReadOnly))
	}
	return resp
}

type activeListResp struct {
	List     listResp   `json:"list"`
	Items    []itemResp `json:"items"`
	Revision uint64     `json:"revision"`
}

func (h *handler) newActiveListResp(out list.ActiveListOutput) activeListResp {
	return activeListResp{
		List:     newListResp(out.List, false),
		Items:    newItemResps(out.Items),
		Revision: out.Revision,
	}
}

type healthResp struct {
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	PercentUsed float64 `json:"percent_used"`
	RawPercent  float64 `json:"raw_percent"`
	Remaining   float64 `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
	Band        string  `json:"band"`
	BandLabel   string  `json:"band_label"`
}

type summaryResp struct {
	ListID       string     `json:"list_id"`
	RunningTotal float64    `json:"running_total"`
	Spent        float64    `json:"spent"`
	Health       healthResp `json:"health"`
}

func (h *handler) newSummaryResp(out list.SummaryOutput) summaryResp {
	return summaryResp{
		ListID:       out.ListID,
		RunningTotal: out.RunningTotal,
		Spent:        out.Spent,
		Health:       newHealthResp(out.Health),
	}
}

func newHealthResp(hl budget.Health) healthResp {
	return healthResp{
		Budget:      hl.Budget,
		Spent:       hl.Spent,
		PercentUsed: hl.PercentUsed,
		RawPercent:  hl.RawPercent,
		Remaining:   hl.Remaining,
		OverBudget:  hl.OverBudget,
		Band:        string(hl.Band),
		BandLabel:   hl.BandLabel,
	}
}
