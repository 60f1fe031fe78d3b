package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/store"
	"github.com/notesafe/notesafe/internal/utils"
	"github.com/notesafe/notesafe/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("user id is missing from the request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.ListNotes(ctx, userID)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during note listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// an empty list serializes as [], not null
	if notes == nil {
		notes = []models.NoteListItem{}
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("user id is missing from the request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.NoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.CreateNote(ctx, userID, req.Title, req.Content)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during note creation")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("user id is missing from the request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")
	note, err := h.services.NoteService.GetNote(ctx, noteID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			log.Err(err).Str("note_id", noteID).Msg("note not found")
			http.Error(w, "note not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during note lookup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("user id is missing from the request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.NoteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Title == nil && req.Content == nil {
		log.Error().Msg("update payload contains no fields")
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	update := models.NoteUpdate{
		ID:      chi.URLParam(r, "id"),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}

	note, err := h.services.NoteService.UpdateNote(ctx, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			log.Err(err).Str("note_id", update.ID).Msg("note not found")
			http.Error(w, "note not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during note update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("user id is missing from the request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")
	if err := h.services.NoteService.DeleteNote(ctx, noteID, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			log.Err(err).Str("note_id", noteID).Msg("note not found")
			http.Error(w, "note not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during note deletion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
