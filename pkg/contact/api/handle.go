package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freshmart/freshmart/pkg/contact"
)

type Handler struct {
	service *contact.ContactService
}

func NewHandler(service *contact.ContactService) *Handler {
	return &Handler{service: service}
}

// Routes registers the contact endpoints, one canonical handler per path.
func Routes(r chi.Router, h *Handler) {
	r.Post("/submit-contact", h.SubmitContact)
	r.Get("/get-contacts", h.ListContacts)
	r.Post("/update-customer-info", h.UpdateCustomerInfo)
	r.Get("/customer-info", h.ListCustomerInfo)
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SubmitContact handles POST /submit-contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var c contact.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	if _, err := h.service.SubmitContact(r.Context(), c); err != nil {
		if errors.Is(err, contact.ErrMissingFields) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "All fields are required."})
			return
		}
		slog.Error("Failed to submit contact form", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Error submitting the form."})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Form submitted successfully!"})
}

// ListContacts handles GET /get-contacts
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		slog.Error("Failed to fetch contacts", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Error fetching contact data."})
		return
	}

	if contacts == nil {
		contacts = []contact.Contact{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, contacts)
}

// UpdateCustomerInfo handles POST /update-customer-info
func (h *Handler) UpdateCustomerInfo(w http.ResponseWriter, r *http.Request) {
	var info contact.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateCustomerInfo(r.Context(), info)
	if err != nil {
		if errors.Is(err, contact.ErrMissingFields) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, MessageResponse{Message: "All fields are required."})
			return
		}
		slog.Error("Failed to update customer info", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to update customer info"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, updated)
}

// ListCustomerInfo handles GET /customer-info
func (h *Handler) ListCustomerInfo(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.ListCustomerInfo(r.Context())
	if err != nil {
		slog.Error("Failed to fetch customer info", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Failed to fetch customer info"})
		return
	}

	if infos == nil {
		infos = []contact.CustomerInfo{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, infos)
}
