package store_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/spotbnb/internal/store"
)

func spot(name string) store.Spot {
	return store.Spot{ID: uuid.New(), OwnerID: uuid.New(), Name: name, Price: 100}
}

func ptr[T any](v T) *T { return &v }

func TestReduce_SpotsLoadedReplacesAllSpots(t *testing.T) {
	old := spot("old")
	s := store.Reduce(store.NewState(), store.SpotsLoaded{Spots: []store.Spot{old}})

	a, b := spot("a"), spot("b")
	next := store.Reduce(s, store.SpotsLoaded{Spots: []store.Spot{a, b}})

	assert.Len(t, next.AllSpots, 2)
	assert.Equal(t, a, next.AllSpots[a.ID])
	assert.NotContains(t, next.AllSpots, old.ID)
	assert.Contains(t, s.AllSpots, old.ID, "input state must not change")
}

func TestReduce_SpotLoadedCopiesImages(t *testing.T) {
	detail := spot("detail")
	detail.SpotImages = []store.SpotImage{{ID: uuid.New(), URL: "https://img/1.jpg", Preview: true}}

	next := store.Reduce(store.NewState(), store.SpotLoaded{Spot: detail})
	detail.SpotImages[0].URL = "mutated"

	assert.Equal(t, "https://img/1.jpg", next.SingleSpot.SpotImages[0].URL)
}

func TestReduce_SpotLoadedWithoutImages(t *testing.T) {
	next := store.Reduce(store.NewState(), store.SpotLoaded{Spot: spot("bare")})

	assert.NotNil(t, next.SingleSpot.SpotImages)
	assert.Empty(t, next.SingleSpot.SpotImages)
}

func TestReduce_SpotCreated(t *testing.T) {
	start := store.NewState()
	created := spot("new")

	next := store.Reduce(start, store.SpotCreated{Spot: created})

	assert.Equal(t, created, next.SingleSpot)
	assert.Equal(t, created, next.AllSpots[created.ID])
	assert.Empty(t, start.AllSpots, "input state must not change")
}

func TestReduce_SpotUpdatedMerges(t *testing.T) {
	listed := spot("before")
	listed.AvgRating = ptr(4.0)
	listed.PreviewImage = "https://img/p.jpg"
	s := store.Reduce(store.NewState(), store.SpotsLoaded{Spots: []store.Spot{listed}})

	detail := listed
	detail.NumReviews = ptr(3)
	detail.SpotImages = []store.SpotImage{{ID: uuid.New(), URL: "https://img/p.jpg", Preview: true}}
	s = store.Reduce(s, store.SpotLoaded{Spot: detail})

	edited := listed
	edited.AvgRating = nil
	edited.PreviewImage = ""
	edited.Name = "after"
	edited.Price = 250
	next := store.Reduce(s, store.SpotUpdated{Spot: edited})

	got := next.AllSpots[listed.ID]
	assert.Equal(t, "after", got.Name)
	assert.InDelta(t, 250, got.Price, 1e-9)
	require.NotNil(t, got.AvgRating)
	assert.InDelta(t, 4.0, *got.AvgRating, 1e-9)
	assert.Equal(t, "https://img/p.jpg", got.PreviewImage)

	assert.Equal(t, "after", next.SingleSpot.Name)
	assert.Len(t, next.SingleSpot.SpotImages, 1)
	require.NotNil(t, next.SingleSpot.NumReviews)
	assert.Equal(t, 3, *next.SingleSpot.NumReviews)

	assert.Equal(t, "before", s.AllSpots[listed.ID].Name, "input state must not change")
}

func TestReduce_SpotUpdatedUnknownSpot(t *testing.T) {
	edited := spot("fresh")

	next := store.Reduce(store.NewState(), store.SpotUpdated{Spot: edited})

	assert.Equal(t, edited, next.AllSpots[edited.ID])
	assert.NotEqual(t, edited.ID, next.SingleSpot.ID)
}

func TestReduce_SpotImageCreatedAppends(t *testing.T) {
	detail := spot("detail")
	first := store.SpotImage{ID: uuid.New(), URL: "https://img/1.jpg"}
	detail.SpotImages = []store.SpotImage{first}
	s := store.Reduce(store.NewState(), store.SpotLoaded{Spot: detail})

	second := store.SpotImage{ID: uuid.New(), URL: "https://img/2.jpg", Preview: true}
	next := store.Reduce(s, store.SpotImageCreated{SpotID: detail.ID, Image: second})

	assert.Equal(t, []store.SpotImage{first, second}, next.SingleSpot.SpotImages)
	assert.Len(t, s.SingleSpot.SpotImages, 1, "input state must not change")
}

// An upload that finishes after the user navigated to another spot must not
// land on the spot now open.
func TestReduce_SpotImageCreatedForOtherSpotIgnored(t *testing.T) {
	open := spot("open")
	s := store.Reduce(store.NewState(), store.SpotLoaded{Spot: open})

	next := store.Reduce(s, store.SpotImageCreated{
		SpotID: uuid.New(),
		Image:  store.SpotImage{ID: uuid.New(), URL: "https://img/late.jpg"},
	})

	assert.Equal(t, open.ID, next.SingleSpot.ID)
	assert.Empty(t, next.SingleSpot.SpotImages)
}

func TestReduce_SpotDeleted(t *testing.T) {
	victim, keeper := spot("victim"), spot("keeper")
	s := store.Reduce(store.NewState(), store.SpotsLoaded{Spots: []store.Spot{victim, keeper}})
	s = store.Reduce(s, store.SpotLoaded{Spot: victim})
	s = store.Reduce(s, store.ReviewsLoaded{SpotID: victim.ID, Reviews: []store.Review{{ID: uuid.New(), SpotID: victim.ID}}})

	next := store.Reduce(s, store.SpotDeleted{ID: victim.ID})

	assert.NotContains(t, next.AllSpots, victim.ID)
	assert.Contains(t, next.AllSpots, keeper.ID)
	assert.Equal(t, uuid.UUID{}, next.SingleSpot.ID)
	assert.NotContains(t, next.Reviews, victim.ID)
	assert.Contains(t, s.AllSpots, victim.ID, "input state must not change")
}

func TestReduce_SpotDeletedOtherSpotKeepsSingle(t *testing.T) {
	open, other := spot("open"), spot("other")
	s := store.Reduce(store.NewState(), store.SpotLoaded{Spot: open})

	next := store.Reduce(s, store.SpotDeleted{ID: other.ID})

	assert.Equal(t, open.ID, next.SingleSpot.ID)
}

func TestReduce_Reviews(t *testing.T) {
	spotID := uuid.New()
	r1 := store.Review{ID: uuid.New(), SpotID: spotID, Stars: 5}
	s := store.Reduce(store.NewState(), store.ReviewsLoaded{SpotID: spotID, Reviews: []store.Review{r1}})

	r2 := store.Review{ID: uuid.New(), SpotID: spotID, Stars: 3}
	next := store.Reduce(s, store.ReviewCreated{Review: r2})

	assert.Len(t, next.Reviews[spotID], 2)
	assert.Equal(t, r2, next.Reviews[spotID][r2.ID])
	assert.Len(t, s.Reviews[spotID], 1, "input state must not change")
}

func TestReduce_Bookings(t *testing.T) {
	spotID := uuid.New()
	public := store.Booking{SpotID: spotID}
	s := store.Reduce(store.NewState(), store.BookingsLoaded{SpotID: spotID, Bookings: []store.Booking{public}})

	mine := store.Booking{ID: uuid.New(), SpotID: spotID}
	next := store.Reduce(s, store.BookingCreated{Booking: mine})

	assert.Equal(t, []store.Booking{public, mine}, next.Bookings[spotID])
	assert.Len(t, s.Bookings[spotID], 1, "input state must not change")
}

func TestReduce_ZeroStateIsUsable(t *testing.T) {
	sp := spot("zero")

	next := store.Reduce(store.State{}, store.SpotCreated{Spot: sp})
	next = store.Reduce(next, store.ReviewCreated{Review: store.Review{ID: uuid.New(), SpotID: sp.ID}})
	next = store.Reduce(next, store.BookingCreated{Booking: store.Booking{SpotID: sp.ID}})

	assert.Len(t, next.AllSpots, 1)
	assert.Len(t, next.Reviews[sp.ID], 1)
	assert.Len(t, next.Bookings[sp.ID], 1)
}

// ---- Store -----------------------------------------------------------------

func TestStore_DispatchNotifiesSubscribers(t *testing.T) {
	st := store.New()
	var seen []int
	unsubscribe := st.Subscribe(func(s store.State) { seen = append(seen, len(s.AllSpots)) })

	st.Dispatch(store.SpotCreated{Spot: spot("one")})
	st.Dispatch(store.SpotCreated{Spot: spot("two")})
	unsubscribe()
	st.Dispatch(store.SpotCreated{Spot: spot("three")})

	assert.Equal(t, []int{1, 2}, seen)
	assert.Len(t, st.State().AllSpots, 3)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	st := store.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(store.SpotCreated{Spot: spot("concurrent")})
			_ = st.State()
		}()
	}
	wg.Wait()

	assert.Len(t, st.State().AllSpots, 50)
}
