package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/spotbnb/internal/store"
)

// ListSpotsParams are the optional filters and paging of GET /spots.
// Nil fields are not sent.
type ListSpotsParams struct {
	Page     *int
	Size     *int
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *float64
	MaxPrice *float64
}

func (p ListSpotsParams) query() (url.Values, error) {
	q := url.Values{}
	add := func(name string, v any) error {
		styled, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, v)
		if err != nil {
			return fmt.Errorf("client.ListSpotsParams: %s: %w", name, err)
		}
		parsed, err := url.ParseQuery(strings.TrimPrefix(styled, "?"))
		if err != nil {
			return fmt.Errorf("client.ListSpotsParams: %s: %w", name, err)
		}
		for k, vs := range parsed {
			q[k] = append(q[k], vs...)
		}
		return nil
	}
	for _, f := range []struct {
		name   string
		intVal *int
		numVal *float64
	}{
		{name: "page", intVal: p.Page},
		{name: "size", intVal: p.Size},
		{name: "minLat", numVal: p.MinLat},
		{name: "maxLat", numVal: p.MaxLat},
		{name: "minLng", numVal: p.MinLng},
		{name: "maxLng", numVal: p.MaxLng},
		{name: "minPrice", numVal: p.MinPrice},
		{name: "maxPrice", numVal: p.MaxPrice},
	} {
		var err error
		switch {
		case f.intVal != nil:
			err = add(f.name, *f.intVal)
		case f.numVal != nil:
			err = add(f.name, *f.numVal)
		}
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

// SpotPage is one page of GET /spots.
type SpotPage struct {
	Spots []store.Spot `json:"Spots"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

// SpotInput is the body of spot create and update calls.
type SpotInput struct {
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ListSpots fetches one page of spots and dispatches store.SpotsLoaded.
func (c *Client) ListSpots(ctx context.Context, params ListSpotsParams) (SpotPage, error) {
	q, err := params.query()
	if err != nil {
		return SpotPage{}, err
	}
	var page SpotPage
	if err := c.do(ctx, http.MethodGet, "/spots", q, nil, &page); err != nil {
		return SpotPage{}, err
	}
	c.store.Dispatch(store.SpotsLoaded{Spots: page.Spots})
	return page, nil
}

// ListCurrentSpots fetches the caller's spots and dispatches store.SpotsLoaded.
func (c *Client) ListCurrentSpots(ctx context.Context) ([]store.Spot, error) {
	var out struct {
		Spots []store.Spot `json:"Spots"`
	}
	if err := c.do(ctx, http.MethodGet, "/spots/current", nil, nil, &out); err != nil {
		return nil, err
	}
	c.store.Dispatch(store.SpotsLoaded{Spots: out.Spots})
	return out.Spots, nil
}

// GetSpot fetches a spot's detail and dispatches store.SpotLoaded.
func (c *Client) GetSpot(ctx context.Context, id uuid.UUID) (store.Spot, error) {
	var sp store.Spot
	if err := c.do(ctx, http.MethodGet, "/spots/"+id.String(), nil, nil, &sp); err != nil {
		return store.Spot{}, err
	}
	c.store.Dispatch(store.SpotLoaded{Spot: sp})
	return sp, nil
}

// CreateSpot creates a spot and dispatches store.SpotCreated.
func (c *Client) CreateSpot(ctx context.Context, in SpotInput) (store.Spot, error) {
	var sp store.Spot
	if err := c.do(ctx, http.MethodPost, "/spots", nil, in, &sp); err != nil {
		return store.Spot{}, err
	}
	c.store.Dispatch(store.SpotCreated{Spot: sp})
	return sp, nil
}

// UpdateSpot replaces a spot's fields and dispatches store.SpotUpdated.
func (c *Client) UpdateSpot(ctx context.Context, id uuid.UUID, in SpotInput) (store.Spot, error) {
	var sp store.Spot
	if err := c.do(ctx, http.MethodPut, "/spots/"+id.String(), nil, in, &sp); err != nil {
		return store.Spot{}, err
	}
	c.store.Dispatch(store.SpotUpdated{Spot: sp})
	return sp, nil
}

// AddSpotImage attaches an image URL to a spot and dispatches store.SpotImageCreated.
func (c *Client) AddSpotImage(ctx context.Context, spotID uuid.UUID, imageURL string, preview bool) (store.SpotImage, error) {
	in := struct {
		URL     string `json:"url"`
		Preview bool   `json:"preview"`
	}{URL: imageURL, Preview: preview}
	var img store.SpotImage
	if err := c.do(ctx, http.MethodPost, "/spots/"+spotID.String()+"/images", nil, in, &img); err != nil {
		return store.SpotImage{}, err
	}
	c.store.Dispatch(store.SpotImageCreated{SpotID: spotID, Image: img})
	return img, nil
}

// DeleteSpot deletes a spot and dispatches store.SpotDeleted.
func (c *Client) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/spots/"+id.String(), nil, nil, nil); err != nil {
		return err
	}
	c.store.Dispatch(store.SpotDeleted{ID: id})
	return nil
}
