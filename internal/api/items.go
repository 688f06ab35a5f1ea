package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/imaging"
	"github.com/erazemk/posest/internal/metrics"
	"github.com/erazemk/posest/internal/model"
	"github.com/erazemk/posest/internal/service"
	"github.com/erazemk/posest/internal/store"
)

// maxPictureSize limits picture uploads to 5 MB.
const maxPictureSize = 5 << 20

// ItemsHandler handles owned item endpoints.
type ItemsHandler struct {
	Items    *service.ItemService
	Pictures *store.ItemStore
	BasePath string
}

type createItemRequest struct {
	Name             string           `json:"name"`
	PictureURL       string           `json:"picture_url"`
	ItemType         model.ItemType   `json:"item_type"`
	Status           model.ItemStatus `json:"status"`
	ItemReceivedDate *time.Time       `json:"item_received_date"`
	LastUsed         *time.Time       `json:"last_used"`
}

// updateItemRequest uses pointers so omitted fields stay untouched.
type updateItemRequest struct {
	Name             *string           `json:"name"`
	PictureURL       *string           `json:"picture_url"`
	ItemType         *model.ItemType   `json:"item_type"`
	Status           *model.ItemStatus `json:"status"`
	ItemReceivedDate *time.Time        `json:"item_received_date"`
	LastUsed         *time.Time        `json:"last_used"`
}

func (req updateItemRequest) patch() model.ItemPatch {
	return model.ItemPatch{
		Name:             req.Name,
		PictureURL:       req.PictureURL,
		ItemType:         req.ItemType,
		Status:           req.Status,
		ItemReceivedDate: req.ItemReceivedDate,
		LastUsed:         req.LastUsed,
	}
}

// itemID parses the {id} path value. A malformed id cannot name an item, so
// callers treat it as absent.
func itemID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	return id, err == nil
}

func itemNotFound(w http.ResponseWriter) {
	jsonError(w, http.StatusNotFound, "Item not found")
}

func (h *ItemsHandler) pictureURL(id uuid.UUID) string {
	return h.BasePath + "/items/" + id.String() + "/picture"
}

func (h *ItemsHandler) now() time.Time {
	return h.Items.Now()
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	query := r.URL.Query()
	filter := model.ItemFilter{
		Status:   model.ItemStatus(query.Get("status")),
		ItemType: model.ItemType(query.Get("item_type")),
	}

	items, err := h.Items.ListForOwner(r.Context(), claims.UserID, filter)
	if err != nil {
		serviceError(w, err, "list items")
		return
	}

	now := h.now()
	resp := make([]itemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, newItemResponse(&items[i], now))
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := service.NewItem{
		Name:             req.Name,
		PictureURL:       req.PictureURL,
		ItemType:         req.ItemType,
		Status:           req.Status,
		ItemReceivedDate: req.ItemReceivedDate,
		LastUsed:         req.LastUsed,
	}

	item, err := h.Items.Create(r.Context(), claims.UserID, in)
	if err != nil {
		serviceError(w, err, "create item")
		return
	}

	metrics.ItemsCreated.WithLabelValues(string(item.ItemType)).Inc()
	slog.Info("item created", "user", claims.Username, "item", item.ID, "name", item.Name)
	jsonResponse(w, http.StatusCreated, newItemResponse(item, h.now()))
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := itemID(r)
	if !ok {
		itemNotFound(w)
		return
	}

	item, err := h.Items.Get(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, err, "get item")
		return
	}
	if item == nil {
		itemNotFound(w)
		return
	}

	jsonResponse(w, http.StatusOK, newItemResponse(item, h.now()))
}

// Update handles PUT /items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := itemID(r)
	if !ok {
		itemNotFound(w)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Items.Update(r.Context(), claims.UserID, id, req.patch())
	if err != nil {
		serviceError(w, err, "update item")
		return
	}
	if item == nil {
		itemNotFound(w)
		return
	}

	// The stored picture is only served while picture_url points at it.
	if req.PictureURL != nil && *req.PictureURL != h.pictureURL(id) {
		if err := h.Pictures.DeleteItemPicture(r.Context(), id); err != nil {
			slog.Error("failed to delete picture", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to delete picture")
			return
		}
	}

	slog.Info("item updated", "user", claims.Username, "item", item.ID)
	jsonResponse(w, http.StatusOK, newItemResponse(item, h.now()))
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := itemID(r)
	if !ok {
		itemNotFound(w)
		return
	}

	found, err := h.Items.Delete(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, err, "delete item")
		return
	}
	if !found {
		itemNotFound(w)
		return
	}

	metrics.ItemsDeleted.Inc()
	slog.Info("item deleted", "user", claims.Username, "item", id)
	jsonMessage(w, "Item deleted successfully")
}

// UploadPicture handles PUT /items/{id}/picture.
func (h *ItemsHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := itemID(r)
	if !ok {
		itemNotFound(w)
		return
	}

	item, err := h.Items.Get(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, err, "get item")
		return
	}
	if item == nil {
		itemNotFound(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPictureSize)
	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("picture")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "picture file required")
		return
	}
	defer file.Close()

	pic, err := imaging.Process(file, imaging.DefaultOptions)
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		jsonError(w, http.StatusBadRequest, "picture must be JPEG or PNG")
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid picture")
		return
	}

	if err := h.Pictures.SetItemPicture(r.Context(), id, pic.Data, imaging.MIME); err != nil {
		slog.Error("failed to save picture", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save picture")
		return
	}

	url := h.pictureURL(id)
	item, err = h.Items.Update(r.Context(), claims.UserID, id, model.ItemPatch{PictureURL: &url})
	if err != nil {
		serviceError(w, err, "update item")
		return
	}
	if item == nil {
		itemNotFound(w)
		return
	}

	slog.Info("item picture uploaded", "user", claims.Username, "item", id, "width", pic.Width, "height", pic.Height)
	jsonResponse(w, http.StatusOK, newItemResponse(item, h.now()))
}

// GetPicture handles GET /items/{id}/picture.
func (h *ItemsHandler) GetPicture(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := itemID(r)
	if !ok {
		itemNotFound(w)
		return
	}

	data, mime, err := h.Pictures.GetItemPicture(r.Context(), claims.UserID, id)
	if err != nil {
		slog.Error("failed to get picture", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get picture")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "Picture not found")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
