package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultFatSecretURL = "https://platform.fatsecret.com/rest/server.api"

// FatSecretService calls the FatSecret platform API. FatSecret still signs
// every request OAuth 1.0a style (HMAC-SHA1 over the sorted query), with no
// user token, so the signing key is just the consumer secret plus "&".
type FatSecretService struct {
	consumerKey    string
	consumerSecret string
	apiURL         string
	client         *http.Client
}

func NewFatSecretService() *FatSecretService {
	return &FatSecretService{
		consumerKey:    os.Getenv("FATSECRET_CONSUMER_KEY"),
		consumerSecret: os.Getenv("FATSECRET_CONSUMER_SECRET"),
		apiURL:         defaultFatSecretURL,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// FoodSummary is the name/id pair the search endpoint returns to callers.
type FoodSummary struct {
	FoodName string `json:"food_name"`
	FoodID   string `json:"food_id"`
}

// GetFood fetches one food record by provider id and returns the provider's
// JSON body untouched.
func (s *FatSecretService) GetFood(ctx context.Context, foodID string) (json.RawMessage, error) {
	if strings.TrimSpace(foodID) == "" {
		return nil, &ValidationError{Fields: []string{"food_id"}}
	}
	return s.call(ctx, "food.get", map[string]string{"food_id": foodID})
}

// foodsSearchResponse tolerates FatSecret's single-hit quirk: "food" is an
// array for multiple results but a bare object for exactly one.
type foodsSearchResponse struct {
	Foods struct {
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
}

// SearchFoods runs foods.search and reshapes the response to name/id pairs,
// truncated to maxResults, keeping the provider's relevance order.
func (s *FatSecretService) SearchFoods(ctx context.Context, query string, maxResults int) ([]FoodSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Fields: []string{"search_expression"}}
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	body, err := s.call(ctx, "foods.search", map[string]string{
		"search_expression": query,
		"max_results":       strconv.Itoa(maxResults),
	})
	if err != nil {
		return nil, err
	}

	var parsed foodsSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ProviderError{Op: "foods.search", Err: fmt.Errorf("decode response: %w", err)}
	}

	results := make([]FoodSummary, 0, maxResults)
	if len(parsed.Foods.Food) > 0 {
		var many []FoodSummary
		if err := json.Unmarshal(parsed.Foods.Food, &many); err == nil {
			results = many
		} else {
			var one FoodSummary
			if err := json.Unmarshal(parsed.Foods.Food, &one); err != nil {
				return nil, &ProviderError{Op: "foods.search", Err: fmt.Errorf("decode results: %w", err)}
			}
			results = append(results, one)
		}
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// providerErrorPayload is FatSecret's in-band error shape: a 200 response
// whose body is {"error":{"code":..,"message":..}}.
type providerErrorPayload struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *FatSecretService) call(ctx context.Context, method string, params map[string]string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.signedURL(method, params), nil)
	if err != nil {
		return nil, &ProviderError{Op: method, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: method, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: method, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var probe providerErrorPayload
	if err := json.Unmarshal(body, &probe); err == nil && probe.Error != nil {
		return nil, &ProviderError{
			Op:         method,
			StatusCode: resp.StatusCode,
			Body:       fmt.Sprintf("code %d: %s", probe.Error.Code, probe.Error.Message),
		}
	}

	return body, nil
}

// signedURL builds the full request URL: API params plus the oauth_* params,
// with oauth_signature computed over the RFC 5849 signature base string.
func (s *FatSecretService) signedURL(method string, params map[string]string) string {
	all := map[string]string{
		"method":                 method,
		"format":                 "json",
		"oauth_consumer_key":     s.consumerKey,
		"oauth_nonce":            nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_version":          "1.0",
	}
	for k, v := range params {
		all[k] = v
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(all[k]))
	}
	paramString := strings.Join(pairs, "&")

	baseString := "GET&" + percentEncode(s.apiURL) + "&" + percentEncode(paramString)

	mac := hmac.New(sha1.New, []byte(percentEncode(s.consumerSecret)+"&"))
	mac.Write([]byte(baseString))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return s.apiURL + "?" + paramString + "&oauth_signature=" + percentEncode(signature)
}

// percentEncode is RFC 3986 encoding; url.QueryEscape differs on spaces and
// tildes, which breaks the signature.
func percentEncode(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.ReplaceAll(escaped, "%7E", "~")
	return escaped
}

func nonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(b)
}
