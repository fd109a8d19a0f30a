package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config はコンテンツレイクへの接続設定。
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // 例: 2023-01-01
	Token      string
	UseCDN     bool
	// 空ならプロジェクトIDから組み立てる（テストではhttptestのURLを入れる）
	BaseURL string
}

// APIError はバックエンドが2xx以外を返したときのエラー。
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: status %d: %s", e.StatusCode, e.Description)
}

// Client はGROQクエリとミューテーションを投げる薄いHTTPクライアント。
type Client struct {
	queryBase  string
	mutateBase string
	token      string
	http       *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.Dataset == "" {
		return nil, errors.New("sanity: dataset is required")
	}
	if cfg.APIVersion == "" {
		return nil, errors.New("sanity: api version is required")
	}

	apiBase := strings.TrimRight(cfg.BaseURL, "/")
	queryHost := apiBase
	if apiBase == "" {
		if cfg.ProjectID == "" {
			return nil, errors.New("sanity: project id is required")
		}
		apiBase = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
		queryHost = apiBase
		// CDNは読み取り専用。書き込みは常にAPIホストへ
		if cfg.UseCDN {
			queryHost = fmt.Sprintf("https://%s.apicdn.sanity.io", cfg.ProjectID)
		}
	}

	version := "v" + strings.TrimPrefix(cfg.APIVersion, "v")
	dataset := url.PathEscape(cfg.Dataset)

	c := &Client{
		queryBase:  fmt.Sprintf("%s/%s/data/query/%s", queryHost, version, dataset),
		mutateBase: fmt.Sprintf("%s/%s/data/mutate/%s", apiBase, version, dataset),
		token:      cfg.Token,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query はGROQを実行して result を dst にデコードする。
func (c *Client) Query(ctx context.Context, groq string, dst any) error {
	u := c.queryBase + "?query=" + url.QueryEscape(groq)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	var res queryResponse
	if err := c.do(req, &res); err != nil {
		return err
	}
	if len(res.Result) == 0 || string(res.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(res.Result, dst); err != nil {
		return fmt.Errorf("sanity: decode result: %w", err)
	}
	return nil
}

type patchOp struct {
	ID  string         `json:"id"`
	Set map[string]any `json:"set"`
}

type deleteOp struct {
	ID string `json:"id"`
}

type mutation struct {
	Patch  *patchOp  `json:"patch,omitempty"`
	Delete *deleteOp `json:"delete,omitempty"`
}

type mutateRequest struct {
	Mutations []mutation `json:"mutations"`
}

// Patch はドキュメントのフィールドを上書きする。
func (c *Client) Patch(ctx context.Context, id string, set map[string]any) error {
	return c.mutate(ctx, mutation{Patch: &patchOp{ID: id, Set: set}})
}

// Delete はドキュメントを削除する。存在しないIDでもバックエンドはエラーにしない。
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, mutation{Delete: &deleteOp{ID: id}})
}

func (c *Client) mutate(ctx context.Context, m mutation) error {
	body, err := json.Marshal(mutateRequest{Mutations: []mutation{m}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mutateBase, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

// error は {"description": ...} のオブジェクトか文字列のどちらか
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorDetail struct {
	Description string `json:"description"`
}

func (c *Client) do(req *http.Request, dst any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sanity: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Description: describe(data)}
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("sanity: decode body: %w", err)
	}
	return nil
}

func describe(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		var d errorDetail
		if json.Unmarshal(eb.Error, &d) == nil && d.Description != "" {
			return d.Description
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
