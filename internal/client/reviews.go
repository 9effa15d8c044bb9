package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/store"
)

// ListReviews fetches a spot's reviews and dispatches store.ReviewsLoaded.
func (c *Client) ListReviews(ctx context.Context, spotID uuid.UUID) ([]store.Review, error) {
	var out struct {
		Reviews []store.Review `json:"Reviews"`
	}
	if err := c.do(ctx, http.MethodGet, "/spots/"+spotID.String()+"/reviews", nil, nil, &out); err != nil {
		return nil, err
	}
	c.store.Dispatch(store.ReviewsLoaded{SpotID: spotID, Reviews: out.Reviews})
	return out.Reviews, nil
}

// CreateReview reviews a spot and dispatches store.ReviewCreated.
func (c *Client) CreateReview(ctx context.Context, spotID uuid.UUID, text string, stars int) (store.Review, error) {
	in := struct {
		Review string `json:"review"`
		Stars  int    `json:"stars"`
	}{Review: text, Stars: stars}
	var rv store.Review
	if err := c.do(ctx, http.MethodPost, "/spots/"+spotID.String()+"/reviews", nil, in, &rv); err != nil {
		return store.Review{}, err
	}
	c.store.Dispatch(store.ReviewCreated{Review: rv})
	return rv, nil
}
