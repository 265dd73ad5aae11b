package http

import (
	"time"

	"cartsync/internal/model"
	"cartsync/internal/share"
)

// --- Request DTOs ---

type shareListReq struct {
	ListID     string `json:"-"`
	Email      string `json:"email"      binding:"required,email"`
	Permission string `json:"permission" binding:"required,oneof=edit view"`
}

func (r shareListReq) toInput() share.ShareListInput {
	return share.ShareListInput{
		ListID:     r.ListID,
		Email:      r.Email,
		Permission: model.Permission(r.Permission),
	}
}

type permissionReq struct {
	Permission string `json:"permission" binding:"required,oneof=edit view"`
}

// --- Response DTOs ---

type shareResp struct {
	ID                 string    `json:"id"`
	ListID             string    `json:"list_id"`
	UserID             string    `json:"user_id"`
	Permission         string    `json:"permission"`
	CollaboratorEmail  string    `json:"collaborator_email"`
	CollaboratorName   string    `json:"collaborator_name,omitempty"`
	CollaboratorAvatar string    `json:"collaborator_avatar,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func newShareResp(s model.ListShare) shareResp {
	return shareResp{
		ID:                 s.ID,
		ListID:             s.ListID,
		UserID:             s.UserID,
		Permission:         string(s.Permission),
		CollaboratorEmail:  s.CollaboratorEmail,
		CollaboratorName:   s.CollaboratorName,
		CollaboratorAvatar: s.CollaboratorAvatar,
		CreatedAt:          s.CreatedAt,
	}
}

func newShareResps(shares []model.ListShare) []shareResp {
	out := make([]shareResp, 0, len(shares))
	for _, s := range shares {
		out = append(out, newShareResp(s))
	}
	return out
}

type sharedListResp struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	Title      string `json:"title"`
	Permission string `json:"permission"`
}

func newSharedListResps(lists []share.SharedList) []sharedListResp {
	out := make([]sharedListResp, 0, len(lists))
	for _, sl := range lists {
		out = append(out, sharedListResp{
			ID:         sl.List.ID,
			OwnerID:    sl.List.OwnerID,
			Title:      sl.List.Title,
			Permission: string(sl.Permission),
		})
	}
	return out
}
