package store

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// State is the cached view of the API. Treat it as read-only: Reduce shares
// unchanged maps and slices between successive states.
type State struct {
	// AllSpots holds the last fetched list, keyed by spot id.
	AllSpots map[uuid.UUID]Spot
	// SingleSpot is the spot whose detail page is open.
	SingleSpot Spot
	// Reviews holds each fetched spot's reviews keyed by review id.
	Reviews map[uuid.UUID]map[uuid.UUID]Review
	// Bookings holds each fetched spot's bookings in server order. Bookings
	// seen by non-owners carry no id, so they are kept as a list.
	Bookings map[uuid.UUID][]Booking
}

// NewState returns the empty state with every map allocated.
func NewState() State {
	return State{
		AllSpots:   map[uuid.UUID]Spot{},
		SingleSpot: Spot{SpotImages: []SpotImage{}},
		Reviews:    map[uuid.UUID]map[uuid.UUID]Review{},
		Bookings:   map[uuid.UUID][]Booking{},
	}
}

// Action is a server response to fold into State.
type Action interface {
	action()
}

// SpotsLoaded replaces AllSpots with a fetched list.
type SpotsLoaded struct{ Spots []Spot }

// SpotLoaded replaces SingleSpot with a fetched spot detail.
type SpotLoaded struct{ Spot Spot }

// SpotCreated records a spot the caller just created.
type SpotCreated struct{ Spot Spot }

// SpotUpdated merges an edited spot over the cached copy.
type SpotUpdated struct{ Spot Spot }

// SpotImageCreated appends an image to SingleSpot when SpotID is the spot
// currently open; otherwise the state is unchanged.
type SpotImageCreated struct {
	SpotID uuid.UUID
	Image  SpotImage
}

// SpotDeleted drops a spot and everything cached under it.
type SpotDeleted struct{ ID uuid.UUID }

// ReviewsLoaded replaces the cached reviews of one spot.
type ReviewsLoaded struct {
	SpotID  uuid.UUID
	Reviews []Review
}

// ReviewCreated adds one review to its spot's cache.
type ReviewCreated struct{ Review Review }

// BookingsLoaded replaces the cached bookings of one spot.
type BookingsLoaded struct {
	SpotID   uuid.UUID
	Bookings []Booking
}

// BookingCreated appends one booking to its spot's cache.
type BookingCreated struct{ Booking Booking }

func (SpotsLoaded) action()      {}
func (SpotLoaded) action()       {}
func (SpotCreated) action()      {}
func (SpotUpdated) action()      {}
func (SpotImageCreated) action() {}
func (SpotDeleted) action()      {}
func (ReviewsLoaded) action()    {}
func (ReviewCreated) action()    {}
func (BookingsLoaded) action()   {}
func (BookingCreated) action()   {}

// Reduce returns the state that results from applying a to s. It never
// mutates s; unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SpotsLoaded:
		all := make(map[uuid.UUID]Spot, len(a.Spots))
		for _, sp := range a.Spots {
			all[sp.ID] = sp
		}
		s.AllSpots = all

	case SpotLoaded:
		sp := a.Spot
		sp.SpotImages = slices.Clone(sp.SpotImages)
		if sp.SpotImages == nil {
			sp.SpotImages = []SpotImage{}
		}
		s.SingleSpot = sp

	case SpotCreated:
		s.SingleSpot = a.Spot
		s.AllSpots = withSpot(s.AllSpots, a.Spot)

	case SpotUpdated:
		merged := a.Spot
		if cur, ok := s.AllSpots[a.Spot.ID]; ok {
			merged = mergeSpot(cur, a.Spot)
		}
		s.AllSpots = withSpot(s.AllSpots, merged)
		if s.SingleSpot.ID == a.Spot.ID {
			s.SingleSpot = mergeSpot(s.SingleSpot, a.Spot)
		}

	case SpotImageCreated:
		if s.SingleSpot.ID != a.SpotID {
			break
		}
		images := make([]SpotImage, 0, len(s.SingleSpot.SpotImages)+1)
		images = append(images, s.SingleSpot.SpotImages...)
		s.SingleSpot.SpotImages = append(images, a.Image)

	case SpotDeleted:
		s.AllSpots = without(s.AllSpots, a.ID)
		s.Reviews = without(s.Reviews, a.ID)
		s.Bookings = without(s.Bookings, a.ID)
		if s.SingleSpot.ID == a.ID {
			s.SingleSpot = Spot{SpotImages: []SpotImage{}}
		}

	case ReviewsLoaded:
		byID := make(map[uuid.UUID]Review, len(a.Reviews))
		for _, r := range a.Reviews {
			byID[r.ID] = r
		}
		s.Reviews = cloneMap(s.Reviews)
		s.Reviews[a.SpotID] = byID

	case ReviewCreated:
		byID := cloneMap(s.Reviews[a.Review.SpotID])
		byID[a.Review.ID] = a.Review
		s.Reviews = cloneMap(s.Reviews)
		s.Reviews[a.Review.SpotID] = byID

	case BookingsLoaded:
		s.Bookings = cloneMap(s.Bookings)
		s.Bookings[a.SpotID] = slices.Clone(a.Bookings)

	case BookingCreated:
		cur := s.Bookings[a.Booking.SpotID]
		list := make([]Booking, 0, len(cur)+1)
		list = append(append(list, cur...), a.Booking)
		s.Bookings = cloneMap(s.Bookings)
		s.Bookings[a.Booking.SpotID] = list
	}
	return s
}

// mergeSpot overlays upd on base. Aggregates and relations that an edit
// response does not carry are kept from base.
func mergeSpot(base, upd Spot) Spot {
	if upd.AvgRating == nil {
		upd.AvgRating = base.AvgRating
	}
	if upd.PreviewImage == "" {
		upd.PreviewImage = base.PreviewImage
	}
	if upd.NumReviews == nil {
		upd.NumReviews = base.NumReviews
	}
	if upd.AvgStarRating == nil {
		upd.AvgStarRating = base.AvgStarRating
	}
	if upd.SpotImages == nil {
		upd.SpotImages = base.SpotImages
	}
	if upd.Owner == nil {
		upd.Owner = base.Owner
	}
	return upd
}

func withSpot(m map[uuid.UUID]Spot, sp Spot) map[uuid.UUID]Spot {
	out := cloneMap(m)
	out[sp.ID] = sp
	return out
}

func without[V any](m map[uuid.UUID]V, id uuid.UUID) map[uuid.UUID]V {
	out := cloneMap(m)
	delete(out, id)
	return out
}

// cloneMap copies m, allocating when m is nil so callers can write to the result.
func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(m)
}
