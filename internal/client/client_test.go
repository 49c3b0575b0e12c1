package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-platform/internal/domain"
)

func TestFetchRestaurants(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/restaurants", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Restaurant{
			{ID: id, Name: "Chez Awa", Currency: "EUR"},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL).FetchRestaurants(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Chez Awa", got[0].Name)
}

func TestFetchFoodsQueryParams(t *testing.T) {
	restaurantID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "fr", q.Get("lang"))
		assert.Equal(t, restaurantID.String(), q.Get("restaurant_id"))
		assert.Equal(t, "dessert", q.Get("category"))
		assert.Equal(t, "5", q.Get("limit"))
		json.NewEncoder(w).Encode([]domain.Food{})
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchFoods(context.Background(), domain.FoodFilter{
		Lang:         "fr",
		RestaurantID: &restaurantID,
		Category:     "dessert",
		Limit:        5,
	})

	require.NoError(t, err)
}

func TestFetchCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commands", r.URL.Path)
		json.NewEncoder(w).Encode([]Command{
			{Code: 41, Type: "delivery", Total: 2450, TotalDisplay: "24.50 €"},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL).FetchCommands(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 41, got[0].Code)
	assert.Equal(t, "24.50 €", got[0].TotalDisplay)
}

func TestValidateCommand(t *testing.T) {
	id := uuid.New()
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).ValidateCommand(context.Background(), id))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/commands/"+id.String()+"/validate", gotPath)
}

func TestDeleteCommand(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteCommand(context.Background(), id))
}

func TestSaveAccompanimentGroups(t *testing.T) {
	foodID := uuid.New()
	var decoded struct {
		Groups []domain.AccompanimentGroup `json:"groups"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/foods/"+foodID.String()+"/accompaniments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	groups := []domain.AccompanimentGroup{
		{ID: uuid.New(), Title: "Sauces", MaxOptions: 2},
		{ID: uuid.New(), Title: "Sides"},
	}
	require.NoError(t, New(srv.URL).SaveAccompanimentGroups(context.Background(), foodID, groups))

	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, "Sauces", decoded.Groups[0].Title)
	assert.Equal(t, "Sides", decoded.Groups[1].Title)
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"command is already validated or revoked"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).RevokeCommand(context.Background(), uuid.New())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Contains(t, string(apiErr.Body), "already validated")
}

func TestRequestAbortsOnContextCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := New(srv.URL).FetchRestaurants(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled))
}
