package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Client is a typed API client. It attaches the stored session token to
// authenticated requests and maps responses onto the error taxonomy in
// errors.go.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *SessionStore
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func New(baseURL string, sessions *SessionStore, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		sessions:   sessions,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (client *Client) Sessions() *SessionStore {
	return client.sessions
}

func (client *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	return client.send(request, out)
}

func (client *Client) doMultipart(ctx context.Context, path string, fieldName string, fileName string, contentType string, file io.Reader, out any) error {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, buffer)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	return client.send(request, out)
}

func (client *Client) send(request *http.Request, out any) error {
	if token := client.sessions.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return client.buildAPIError(response)
	}

	if out == nil {
		io.Copy(io.Discard, response.Body)
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return &ServerError{Status: response.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func (client *Client) buildAPIError(response *http.Response) error {
	message := decodeErrorMessage(response.Body)
	if message == "" {
		message = http.StatusText(response.StatusCode)
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		// The stored token is no longer honored; drop it so the next
		// command starts signed out.
		client.sessions.Clear()
		return &AuthError{Message: message}
	case response.StatusCode < 500:
		return &ValidationError{Status: response.StatusCode, Message: message}
	default:
		return &ServerError{Status: response.StatusCode, Message: message}
	}
}

func decodeErrorMessage(body io.Reader) string {
	envelope := struct {
		Error string `json:"error"`
	}{}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Error
}
