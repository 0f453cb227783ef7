package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ecovision/internal/dto/indicators_v2_dto"
	"ecovision/internal/metrics"

	"github.com/rs/zerolog/log"
)

type Client struct {
	APIURL string
	client *http.Client
}

func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	if apiURL == "" {
		return nil, errors.New("api url is empty")
	}
	return &Client{
		APIURL: apiURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) FetchReadings(ctx context.Context, request indicators_v2_dto.RequestBody) (resp *indicators_v2_dto.ResponseBody, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamRequest(time.Since(start), err == nil)
	}()

	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("err during marshaling of a request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("err during creating a request with context: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Err(err).Msg("couldn't close a body")
		}
	}(httpResp.Body)

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status code: " + httpResp.Status)
	}

	var response indicators_v2_dto.ResponseBody
	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("err during unmarshaling of a response: %w", err)
	}

	return &response, nil
}
