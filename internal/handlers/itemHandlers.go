package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"cutmevents/internal/models"
	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

type ItemHandler struct {
	service services.ItemService
}

func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var input models.ItemInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ItemFilter{Type: models.ItemType(query.Get("type"))}
	if raw := query.Get("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendJSONError(w, "Invalid published filter", http.StatusBadRequest)
			return
		}
		filter.Published = &published
	}

	items, err := h.service.GetItems(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	itemID, err := utils.ObjectIDFromVars(r, "id")
	if err != nil {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	item, err := h.service.GetItemByID(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := utils.ObjectIDFromVars(r, "id")
	if err != nil {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	var input models.ItemInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemID, input)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	hlog.FromRequest(r).Info().Str("item_id", itemID.Hex()).Msg("Item updated")
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := utils.ObjectIDFromVars(r, "id")
	if err != nil {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
