package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
)

// reviewRequest is the body of POST /spots/{spotId}/reviews.
type reviewRequest struct {
	Review string `json:"review" validate:"required"`
	Stars  *int   `json:"stars" validate:"required,min=1,max=5"`
}

func (reviewRequest) fieldMessages() map[string]string {
	return map[string]string{
		"review": "Review text is required",
		"stars":  "Stars must be an integer from 1 to 5",
	}
}

type reviewResponse struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"userId"`
	SpotID    uuid.UUID     `json:"spotId"`
	Review    string        `json:"review"`
	Stars     int           `json:"stars"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	User      *userResponse `json:"User,omitempty"`
}

type reviewListResponse struct {
	Reviews []reviewResponse `json:"Reviews"`
}

// ListSpotReviews handles GET /spots/{spotId}/reviews.
func (s *Server) ListSpotReviews(w http.ResponseWriter, r *http.Request) {
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	reviews, err := s.reviews.ListBySpot(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	out := make([]reviewResponse, len(reviews))
	for i, rv := range reviews {
		out[i] = toReviewResponse(rv)
	}
	writeJSON(w, http.StatusOK, reviewListResponse{Reviews: out})
}

// CreateSpotReview handles POST /spots/{spotId}/reviews.
// The body is validated before the spot is looked up.
func (s *Server) CreateSpotReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	var body reviewRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err, "")
		return
	}

	created, err := s.reviews.Create(r.Context(), domain.Review{
		SpotID: id,
		UserID: userID,
		Review: body.Review,
		Stars:  *body.Stars,
	})
	if err != nil {
		respondError(w, r, err, msgReviewExists)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(created))
}

func toReviewResponse(rv domain.Review) reviewResponse {
	resp := reviewResponse{
		ID:        rv.ID,
		UserID:    rv.UserID,
		SpotID:    rv.SpotID,
		Review:    rv.Review,
		Stars:     rv.Stars,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
	if rv.User != nil {
		u := toUserResponse(*rv.User)
		resp.User = &u
	}
	return resp
}
