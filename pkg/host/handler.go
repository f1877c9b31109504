package host

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service *Service
}

type HostDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

// ListHosts returns every interviewer profile.
// @Summary List interviewer profiles
// @Produce json
// @Success 200 {array} HostDTO
// @Router /api/host [get]
func (h *Handler) ListHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.service.ListHosts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HostDTO, 0, len(hosts))
	for _, host := range hosts {
		dtos = append(dtos, hostToDTO(host))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func hostToDTO(h Host) HostDTO {
	return HostDTO{
		ID:       h.ID,
		Name:     h.Name,
		Company:  h.Company,
		Title:    h.Title,
		Bio:      h.Bio,
		PhotoURL: h.PhotoURL,
	}
}
