package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
)

// spotRequest is the body of POST /spots and PUT /spots/{spotId}.
type spotRequest struct {
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Lat         *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng         *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Name        string   `json:"name" validate:"required,max=49"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gt=0,lte=99999999.99"` // NUMERIC(10,2)
}

func (spotRequest) fieldMessages() map[string]string {
	return map[string]string{
		"address":     "Street address is required",
		"city":        "City is required",
		"state":       "State is required",
		"country":     "Country is required",
		"lat":         "Latitude is not valid",
		"lng":         "Longitude is not valid",
		"name":        "Name must be less than 50 characters",
		"description": "Description is required",
		"price":       "Price per day is required",
	}
}

func (b spotRequest) toSpot(id, ownerID uuid.UUID) domain.Spot {
	return domain.Spot{
		ID:          id,
		OwnerID:     ownerID,
		Address:     b.Address,
		City:        b.City,
		State:       b.State,
		Country:     b.Country,
		Lat:         *b.Lat,
		Lng:         *b.Lng,
		Name:        b.Name,
		Description: b.Description,
		Price:       *b.Price,
	}
}

// imageRequest is the body of POST /spots/{spotId}/images.
type imageRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Preview bool   `json:"preview"`
}

func (imageRequest) fieldMessages() map[string]string {
	return map[string]string{"url": "Image url must be a valid URL"}
}

type spotResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type spotListItem struct {
	spotResponse
	AvgRating    *float64 `json:"avgRating"`
	PreviewImage string   `json:"previewImage"`
}

type spotListResponse struct {
	Spots []spotListItem `json:"Spots"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type ownedSpotsResponse struct {
	Spots []spotListItem `json:"Spots"`
}

type imageResponse struct {
	ID      uuid.UUID `json:"id"`
	URL     string    `json:"url"`
	Preview bool      `json:"preview"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type spotDetailResponse struct {
	spotResponse
	NumReviews    int             `json:"numReviews"`
	AvgStarRating *float64        `json:"avgStarRating"`
	SpotImages    []imageResponse `json:"SpotImages"`
	Owner         userResponse    `json:"Owner"`
}

// listQueryMessages holds the reason reported for each malformed listing parameter.
var listQueryMessages = map[string]string{
	"page":     "Page must be greater than or equal to 1",
	"size":     "Size must be greater than or equal to 1",
	"minLat":   "Minimum latitude is invalid",
	"maxLat":   "Maximum latitude is invalid",
	"minLng":   "Minimum longitude is invalid",
	"maxLng":   "Maximum longitude is invalid",
	"minPrice": "Minimum price must be greater than or equal to 0",
	"maxPrice": "Maximum price must be greater than or equal to 0",
}

// ListSpots handles GET /spots.
// Supports ?page= (default 1, max 10) and ?size= (default 20, max 20) plus
// the optional minLat, maxLat, minLng, maxLng, minPrice and maxPrice bounds.
func (s *Server) ListSpots(w http.ResponseWriter, r *http.Request) {
	var (
		page, size *int
		filter     domain.SpotFilter
	)
	fields := map[string]string{}
	bind := func(name string, dest any) { queryParam(r, name, dest, listQueryMessages[name], fields) }
	bind("page", &page)
	bind("size", &size)
	bind("minLat", &filter.MinLat)
	bind("maxLat", &filter.MaxLat)
	bind("minLng", &filter.MinLng)
	bind("maxLng", &filter.MaxLng)
	bind("minPrice", &filter.MinPrice)
	bind("maxPrice", &filter.MaxPrice)
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, msgBadRequest, fields)
		return
	}

	params, err := domain.NewPaginationParams(page, size)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	spots, err := s.spots.List(r.Context(), filter, params)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, spotListResponse{Spots: toListItems(spots), Page: params.Page, Size: params.Size})
}

// ListCurrentSpots handles GET /spots/current.
func (s *Server) ListCurrentSpots(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	spots, err := s.spots.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ownedSpotsResponse{Spots: toListItems(spots)})
}

// GetSpot handles GET /spots/{spotId}.
func (s *Server) GetSpot(w http.ResponseWriter, r *http.Request) {
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	detail, err := s.spots.GetDetail(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(detail))
}

// CreateSpot handles POST /spots.
func (s *Server) CreateSpot(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body spotRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err, "")
		return
	}
	created, err := s.spots.Create(r.Context(), body.toSpot(uuid.UUID{}, userID))
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, toSpotResponse(created))
}

// UpdateSpot handles PUT /spots/{spotId}.
// Ownership is checked before the body so a stranger always sees 404.
func (s *Server) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if _, err := s.spots.GetOwned(r.Context(), id, userID); err != nil {
		respondError(w, r, err, "")
		return
	}

	var body spotRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err, "")
		return
	}
	updated, err := s.spots.Update(r.Context(), body.toSpot(id, userID))
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toSpotResponse(updated))
}

// DeleteSpot handles DELETE /spots/{spotId}.
func (s *Server) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if err := s.spots.Delete(r.Context(), id, userID); err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgDeleted})
}

// CreateSpotImage handles POST /spots/{spotId}/images.
func (s *Server) CreateSpotImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	var body imageRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err, "")
		return
	}
	img, err := s.spots.AddImage(r.Context(), userID, domain.SpotImage{SpotID: id, URL: body.URL, Preview: body.Preview})
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, imageResponse{ID: img.ID, URL: img.URL, Preview: img.Preview})
}

// --- mapping helpers --------------------------------------------------------

func toSpotResponse(sp domain.Spot) spotResponse {
	return spotResponse{
		ID:          sp.ID,
		OwnerID:     sp.OwnerID,
		Address:     sp.Address,
		City:        sp.City,
		State:       sp.State,
		Country:     sp.Country,
		Lat:         sp.Lat,
		Lng:         sp.Lng,
		Name:        sp.Name,
		Description: sp.Description,
		Price:       sp.Price,
		CreatedAt:   sp.CreatedAt,
		UpdatedAt:   sp.UpdatedAt,
	}
}

func toListItems(spots []domain.SpotSummary) []spotListItem {
	out := make([]spotListItem, len(spots))
	for i, sp := range spots {
		out[i] = spotListItem{
			spotResponse: toSpotResponse(sp.Spot),
			AvgRating:    sp.AvgRating,
			PreviewImage: sp.PreviewImage,
		}
	}
	return out
}

func toDetailResponse(d domain.SpotDetail) spotDetailResponse {
	images := make([]imageResponse, len(d.Images))
	for i, img := range d.Images {
		images[i] = imageResponse{ID: img.ID, URL: img.URL, Preview: img.Preview}
	}
	return spotDetailResponse{
		spotResponse:  toSpotResponse(d.Spot),
		NumReviews:    d.NumReviews,
		AvgStarRating: d.AvgStarRating,
		SpotImages:    images,
		Owner:         toUserResponse(d.Owner),
	}
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
