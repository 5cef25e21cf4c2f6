package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"hoopstats/outcome"
	"hoopstats/utils"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://stats.nba.com/stats"

// SeasonAll asks playergamelog for every season a player has played.
const SeasonAll = "ALL"

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration, rps float64) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

func initNBAReq(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Referer", "https://www.nba.com/")
	req.Header.Add("Origin", "https://www.nba.com")
	req.Header.Add("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return req, nil
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type statsResp struct {
	ResultSets []resultSet `json:"resultSets"`
}

// row looks values up by column header, so a reordered feed still decodes.
type row struct {
	index map[string]int
	raw   []interface{}
}

func (r row) get(col string) any {
	i, ok := r.index[col]
	if !ok || i >= len(r.raw) {
		return nil
	}
	return r.raw[i]
}

func (rs resultSet) rows() []row {
	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[h] = i
	}
	rows := make([]row, len(rs.RowSet))
	for i, raw := range rs.RowSet {
		rows[i] = row{index: index, raw: raw}
	}
	return rows
}

// get fetches endpoint and returns its first result set. Transport failures,
// non-2xx responses and unreadable bodies are reported as TransientFetch.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*resultSet, error) {
	op := "nba." + endpoint
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, outcome.Wrap(outcome.TransientFetch, op, err)
	}
	req, err := initNBAReq(ctx, fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode()))
	if err != nil {
		return nil, outcome.Wrap(outcome.Unexpected, op, utils.ErrorWithTrace(err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, outcome.Wrap(outcome.TransientFetch, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, outcome.Wrap(outcome.TransientFetch, op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, outcome.Wrap(outcome.TransientFetch, op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	unmarshalledBody := statsResp{}
	if err := json.Unmarshal(body, &unmarshalledBody); err != nil {
		return nil, &outcome.Error{
			Kind: outcome.TransientFetch,
			Op:   op,
			Msg:  "stats.nba.com sent a response that could not be read",
			Err:  utils.ErrorWithTrace(err),
		}
	}
	if len(unmarshalledBody.ResultSets) == 0 {
		return &resultSet{}, nil
	}
	return &unmarshalledBody.ResultSets[0], nil
}

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}
