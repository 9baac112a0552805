// Package backend is the HTTP client for the Speak Sharp analysis API.
// The one-time Connect handshake is the platform bootstrap step gating
// UI mount.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
)

var (
	// ErrConnectInFlight means Connect was called again before the
	// first call finished. That is a caller bug, not a retry signal.
	ErrConnectInFlight = errors.New("backend: connect already in flight")
	// ErrAlreadyConnected means Connect was called after a successful
	// handshake.
	ErrAlreadyConnected = errors.New("backend: already connected")
	// ErrNoAudio means analyze was requested without an attached file.
	ErrNoAudio = errors.New("backend: no audio file attached")
)

// Client talks to the Speak Sharp API. In offline mode the handshake
// succeeds without dialing and the analyze endpoints are unavailable.
type Client struct {
	baseURL string
	offline bool
	http    *http.Client
	log     *zap.Logger

	connecting atomic.Bool
	connected  atomic.Bool
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Offline bool
	Logger  *zap.Logger
}

func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		offline: opts.Offline,
		http:    &http.Client{Timeout: opts.Timeout},
		log:     logger,
	}
}

// Connect performs the one-time health handshake. Exactly one call may
// be outstanding; calling again mid-flight returns ErrConnectInFlight
// and calling after success returns ErrAlreadyConnected.
func (c *Client) Connect(ctx context.Context) error {
	if c.connected.Load() {
		return ErrAlreadyConnected
	}
	if !c.connecting.CompareAndSwap(false, true) {
		return ErrConnectInFlight
	}
	defer c.connecting.Store(false)

	if c.offline {
		c.connected.Store(true)
		c.log.Info("backend handshake skipped", zap.Bool("offline", true))
		return nil
	}

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if !health.Healthy() {
		return fmt.Errorf("handshake: backend reported status %q", health.Status)
	}
	c.connected.Store(true)
	c.log.Info("backend connected", zap.String("base_url", c.baseURL), zap.Any("services", health.Services))
	return nil
}

// Connected reports whether the handshake has completed.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// Analyze uploads the take's audio to /api/v2/analyze. Satisfies
// analysis.Analyzer.
func (c *Client) Analyze(ctx context.Context, req analysis.Request) (analysis.Result, error) {
	if req.AudioPath == "" {
		return analysis.Result{}, ErrNoAudio
	}
	fields := map[string]string{
		"user_id":           req.UserID,
		"topic":             req.Topic,
		"speech_type":       req.SpeechType,
		"expected_duration": req.ExpectedDuration,
		"actual_duration":   analysis.FormatClock(req.ActualDuration),
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	var out analysis.Result
	if err := c.postMultipart(ctx, "/api/v2/analyze", req.AudioPath, fields, &out); err != nil {
		return analysis.Result{}, err
	}
	out.Source = "backend"
	return out, nil
}

// QuickAnalyze runs the preview analysis without persisting server-side.
func (c *Client) QuickAnalyze(ctx context.Context, audioPath, gender string) (analysis.Result, error) {
	if audioPath == "" {
		return analysis.Result{}, ErrNoAudio
	}
	fields := map[string]string{}
	if gender != "" {
		fields["gender"] = gender
	}
	var out analysis.Result
	if err := c.postMultipart(ctx, "/api/v2/quick-analyze", audioPath, fields, &out); err != nil {
		return analysis.Result{}, err
	}
	out.Source = "backend"
	return out, nil
}

// Speeches fetches the user's server-side history, newest first.
func (c *Client) Speeches(ctx context.Context, userID string, limit int) ([]Speech, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out speechesResponse
	path := "/api/v2/user/" + url.PathEscape(userID) + "/speeches"
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out.Speeches, nil
}

// Stats fetches aggregate user statistics.
func (c *Client) Stats(ctx context.Context, userID string) (UserStats, error) {
	var out UserStats
	path := "/api/v2/user/" + url.PathEscape(userID) + "/stats"
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return UserStats{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) postMultipart(ctx context.Context, path, filePath string, fields map[string]string, out any) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("multipart file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
