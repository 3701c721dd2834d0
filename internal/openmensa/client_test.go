package openmensa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(handler http.Handler) (*Client, func()) {
	srv := httptest.NewServer(handler)
	client := NewClient()
	client.BaseURL = srv.URL
	return client, srv.Close
}

func TestCanteenByID(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/canteens/42", r.URL.Path)
		fmt.Fprint(w, `{"id":42,"name":"Mensa Academica","city":"Aachen","address":"Pontwall 3"}`)
	}))
	defer stop()

	canteen, err := client.CanteenByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 42, canteen.ID)
	require.Equal(t, "Mensa Academica", canteen.Name)
}

func TestCanteenByIDNotFound(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer stop()

	canteen, err := client.CanteenByID(context.Background(), 9999)
	require.NoError(t, err)
	require.Nil(t, canteen)
}

func TestCanteenByIDServerError(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer stop()

	_, err := client.CanteenByID(context.Background(), 42)
	require.Error(t, err)
}

func TestCanteensByLocationWalksPagesAndFilters(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Total-Pages", "2")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[{"id":1,"name":"Mensa Academica","city":"Aachen","address":"Pontwall 3"},
				{"id":2,"name":"Zeltschlösschen","city":"Dresden","address":"Nürnberger Str. 55"}]`)
		case "2":
			fmt.Fprint(w, `[{"id":3,"name":"Mensa Vita","city":"Aachen","address":"Helmertweg 1"}]`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer stop()

	canteens, err := client.CanteensByLocation(context.Background(), "AACHEN")
	require.NoError(t, err)
	require.Len(t, canteens, 2)
	require.Equal(t, 1, canteens[0].ID)
	require.Equal(t, 3, canteens[1].ID)
}

func TestCanteensByLocationNoMatches(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Total-Pages", "1")
		fmt.Fprint(w, `[{"id":1,"name":"Mensa Academica","city":"Aachen","address":"Pontwall 3"}]`)
	}))
	defer stop()

	canteens, err := client.CanteensByLocation(context.Background(), "atlantis")
	require.NoError(t, err)
	require.Empty(t, canteens)
}

func TestMealsOnNotFoundNamesEndpoint(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer stop()

	_, err := client.MealsOn(context.Background(), 42, "2024-05-01")
	require.Error(t, err)
	require.Contains(t, err.Error(), "/canteens/42/days/2024-05-01/meals")
	require.Contains(t, err.Error(), "not found")
}

func TestCanteensByIDs(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1,2,3", r.URL.Query().Get("ids"))
		fmt.Fprint(w, `[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"}]`)
	}))
	defer stop()

	canteens, err := client.CanteensByIDs(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, canteens, 3)
}

func TestMealsOn(t *testing.T) {
	client, stop := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/canteens/42/days/2024-05-01/meals", r.URL.Path)
		fmt.Fprint(w, `[{"id":9,"name":"Spaghetti","category":"Pasta",
			"prices":{"students":2.9,"employees":null,"pupils":null,"others":4.2},
			"notes":["vegetarian"]}]`)
	}))
	defer stop()

	meals, err := client.MealsOn(context.Background(), 42, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	require.Equal(t, "Spaghetti", meals[0].Name)
	require.NotNil(t, meals[0].Prices.Students)
	require.InDelta(t, 2.9, *meals[0].Prices.Students, 0.001)
	require.Nil(t, meals[0].Prices.Employees)
}
