package client

import (
	"context"
	"net/http"
)

func (client *Client) GetProfile(ctx context.Context) (Profile, error) {
	profile := Profile{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (client *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (Profile, error) {
	profile := Profile{}
	if err := client.doJSON(ctx, http.MethodPut, "/api/user/profile", update, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
