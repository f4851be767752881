package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// UploadMeal submits a meal photo for analysis. The returned receipt carries
// the meal ID to poll with WaitForAnalysis.
func (client *Client) UploadMeal(ctx context.Context, fileName string, contentType string, image io.Reader) (UploadReceipt, error) {
	receipt := UploadReceipt{}
	if err := client.doMultipart(ctx, "/api/meals/upload", "image", fileName, contentType, image, &receipt); err != nil {
		return UploadReceipt{}, err
	}
	return receipt, nil
}

func (client *Client) ListMeals(ctx context.Context) (MealList, error) {
	list := MealList{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/meals", nil, &list); err != nil {
		return MealList{}, err
	}
	return list, nil
}

func (client *Client) GetMeal(ctx context.Context, mealID string) (Meal, error) {
	meal := Meal{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/meals/"+url.PathEscape(mealID), nil, &meal); err != nil {
		return Meal{}, err
	}
	return meal, nil
}

func (client *Client) GetMealAnalysis(ctx context.Context, mealID string) (Meal, error) {
	meal := Meal{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/meals/"+url.PathEscape(mealID)+"/analysis", nil, &meal); err != nil {
		return Meal{}, err
	}
	return meal, nil
}

func (client *Client) DeleteMeal(ctx context.Context, mealID string) error {
	return client.doJSON(ctx, http.MethodDelete, "/api/meals/"+url.PathEscape(mealID), nil, nil)
}

func (client *Client) SearchFoods(ctx context.Context, query string, limit int) (FoodSearchResult, error) {
	values := url.Values{}
	values.Set("q", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	result := FoodSearchResult{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/meals/search?"+values.Encode(), nil, &result); err != nil {
		return FoodSearchResult{}, err
	}
	return result, nil
}

// CreateManualMeal records foods the user picked by hand. Callers scale
// catalog nutrition to the chosen quantity first, see ManualSelection.
func (client *Client) CreateManualMeal(ctx context.Context, foods []ManualFood) (Meal, error) {
	body := map[string]any{"foods": foods}
	meal := Meal{}
	if err := client.doJSON(ctx, http.MethodPost, "/api/meals/manual", body, &meal); err != nil {
		return Meal{}, err
	}
	return meal, nil
}
