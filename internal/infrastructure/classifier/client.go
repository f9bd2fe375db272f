package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/phishguard/phishguard/internal/domain"
)

// Client talks to the external phishing-scoring service. The model itself
// lives behind that HTTP endpoint; this process only relays verdicts.
type Client struct {
	checkURL string
	client   *http.Client
	lg       zerolog.Logger
}

func New(checkURL string, timeout time.Duration, lg zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		checkURL: strings.TrimRight(checkURL, "/"),
		client:   &http.Client{Timeout: timeout},
		lg:       lg.With().Str("component", "classifier_client").Logger(),
	}
}

type checkRequest struct {
	URL string `json:"url"`
}

// Check posts the URL to the scoring service and returns the verdict body
// as raw JSON so the handler can relay it untouched.
func (c *Client) Check(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := json.Marshal(checkRequest{URL: url})
	if err != nil {
		return nil, domain.ErrInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, bytes.NewReader(body))
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.lg.Error().Err(err).Str("url", url).Msg("classifier unreachable")
		return nil, domain.ErrClassifierUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.ErrClassifierUnavailable(err)
	}
	if resp.StatusCode != http.StatusOK {
		c.lg.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("classifier rejected request")
		return nil, domain.ErrClassifierUnavailable(fmt.Errorf("classifier status %d", resp.StatusCode))
	}
	if !json.Valid(raw) {
		return nil, domain.ErrClassifierUnavailable(fmt.Errorf("classifier returned non-JSON body"))
	}
	return json.RawMessage(raw), nil
}
