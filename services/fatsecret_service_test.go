package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestFatSecret(ts *httptest.Server) *FatSecretService {
	return &FatSecretService{
		consumerKey:    "test-key",
		consumerSecret: "test-secret",
		apiURL:         ts.URL,
		client:         ts.Client(),
	}
}

func TestSearchFoodsReshapesAndCaps(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"foods":{"food":[
			{"food_name":"Cheddar Cheese","food_id":"33691"},
			{"food_name":"Cheddar Cheese (Reduced Fat)","food_id":"33690"},
			{"food_name":"Sharp Cheddar","food_id":"5192"}
		]}}`))
	}))
	defer ts.Close()

	results, err := newTestFatSecret(ts).SearchFoods(context.Background(), "cheddar cheese", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected results capped at 2, got %d", len(results))
	}
	for _, r := range results {
		if r.FoodName == "" || r.FoodID == "" {
			t.Fatalf("result with empty field: %+v", r)
		}
	}
	if results[0].FoodID != "33691" {
		t.Fatalf("provider order not preserved: %+v", results)
	}

	if gotQuery.Get("method") != "foods.search" {
		t.Fatalf("wrong method param: %q", gotQuery.Get("method"))
	}
	if gotQuery.Get("search_expression") != "cheddar cheese" {
		t.Fatalf("wrong search expression: %q", gotQuery.Get("search_expression"))
	}
	if gotQuery.Get("oauth_signature") == "" || gotQuery.Get("oauth_consumer_key") != "test-key" {
		t.Fatal("request not OAuth-signed")
	}
}

func TestSearchFoodsSingleObjectQuirk(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":{"food":{"food_name":"Durian","food_id":"777"}}}`))
	}))
	defer ts.Close()

	results, err := newTestFatSecret(ts).SearchFoods(context.Background(), "durian", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].FoodID != "777" {
		t.Fatalf("single-hit response mishandled: %+v", results)
	}
}

func TestSearchFoodsNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":{"total_results":"0"}}`))
	}))
	defer ts.Close()

	results, err := newTestFatSecret(ts).SearchFoods(context.Background(), "zzzz", 10)
	if err != nil {
		t.Fatalf("no-result search must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result set, got %+v", results)
	}
}

func TestGetFoodPassthrough(t *testing.T) {
	body := `{"food":{"food_id":"33691","food_name":"Cheddar Cheese","servings":{}}}`
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	raw, err := newTestFatSecret(ts).GetFood(context.Background(), "33691")
	if err != nil {
		t.Fatalf("get food: %v", err)
	}
	if string(raw) != body {
		t.Fatalf("body not passed through untouched: %s", raw)
	}
	if gotQuery.Get("method") != "food.get" || gotQuery.Get("food_id") != "33691" {
		t.Fatalf("wrong request params: %v", gotQuery)
	}
}

func TestProviderNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestFatSecret(ts).GetFood(context.Background(), "1")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502 recorded, got %d", providerErr.StatusCode)
	}
}

func TestProviderInBandErrorPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":106,"message":"Invalid ID: food_id is invalid"}}`))
	}))
	defer ts.Close()

	_, err := newTestFatSecret(ts).GetFood(context.Background(), "bogus")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError for in-band error payload, got %v", err)
	}
}

func TestGetFoodRejectsEmptyID(t *testing.T) {
	svc := &FatSecretService{apiURL: defaultFatSecretURL, client: http.DefaultClient}

	_, err := svc.GetFood(context.Background(), "  ")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
