package archive

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/thep200/github-user-crawler/pkg/log"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
	maxPage         = 100000
)

type Handler struct {
	Logger log.Logger
	store  Store
}

func NewHandler(logger log.Logger, store Store) *Handler {
	return &Handler{Logger: logger, store: store}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	for _, res := range Resources {
		mux.HandleFunc("/api/"+res.Path, h.list(res))
	}
}

type pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

type listResponse struct {
	Items      any        `json:"items"`
	Pagination pagination `json:"pagination"`
}

func (h *Handler) list(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		page := parsePage(r)
		rows, total, err := h.store.Find(r.Context(), res, page)
		if err != nil {
			h.Logger.Error(r.Context(), "Failed to fetch %s: %v", res.Path, err)
			http.Error(w, "Failed to fetch "+res.Path, http.StatusInternalServerError)
			return
		}

		response := listResponse{
			Items: rows,
			Pagination: pagination{
				Page:       page.Number,
				PageSize:   page.Size,
				TotalCount: total,
				TotalPages: (total + int64(page.Size) - 1) / int64(page.Size),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.Logger.Error(r.Context(), "Failed to encode JSON response: %v", err)
		}
	}
}

// parsePage reads page, pageSize and search, falling back to defaults on
// missing or invalid values. page is capped at maxPage so the offset cannot
// overflow.
func parsePage(r *http.Request) Page {
	q := r.URL.Query()

	number, err := strconv.Atoi(q.Get("page"))
	if err != nil || number < 1 {
		number = 1
	}
	if number > maxPage {
		number = maxPage
	}
	size, err := strconv.Atoi(q.Get("pageSize"))
	if err != nil || size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return Page{Number: number, Size: size, Search: q.Get("search")}
}
