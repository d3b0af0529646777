// Package postalcode validates Brazilian postal codes (CEP) against the ViaCEP
// directory, caching every answer, including failures, for a fixed period.
package postalcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/cache"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/metrics"
	"go-contacts-backend/pkg/validation"
)

const (
	DefaultBaseURL = "https://viacep.com.br"
	DefaultTTL     = 2 * time.Hour

	keyPrefix = "cep:"
	// maxBodyBytes bounds what we read from the directory; real answers are a few hundred bytes.
	maxBodyBytes = 64 << 10
)

// negativeMarker is cached when the directory gave no verifiable answer.
var negativeMarker = []byte("null")

type Config struct {
	BaseURL string
	TTL     time.Duration
	Timeout time.Duration
}

type Validator struct {
	store   cache.Store
	client  *http.Client
	baseURL string
	ttl     time.Duration
	group   singleflight.Group
}

func NewValidator(store cache.Store, cfg Config) *Validator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Validator{
		store:   store,
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		ttl:     cfg.TTL,
	}
}

// CacheKey returns the cache key used for a raw postal code.
func CacheKey(raw string) string {
	return keyPrefix + validation.NormalizeCEP(raw)
}

// viaCEPPayload mirrors the directory response. Erro is true (or "true") for
// codes that do not exist.
type viaCEPPayload struct {
	domain.Address
	Erro interface{} `json:"erro,omitempty"`
}

// Validate returns the address for raw, or domain.ErrInvalidPostalCode when the
// code cannot be confirmed.
func (v *Validator) Validate(ctx context.Context, raw string) (*domain.Address, error) {
	digits := validation.NormalizeCEP(raw)
	if digits == "" {
		return nil, domain.ErrInvalidPostalCode
	}
	key := keyPrefix + digits

	body, found, err := v.store.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("postal code cache read failed", "key", key, "error", err)
		found = false
	}
	if found {
		if bytes.Equal(body, negativeMarker) {
			metrics.PostalCodeLookups.WithLabelValues("negative_hit").Inc()
		} else {
			metrics.PostalCodeLookups.WithLabelValues("hit").Inc()
		}
		return decode(body)
	}

	metrics.PostalCodeLookups.WithLabelValues("miss").Inc()
	// The shared lookup is detached from the caller so one cancelled request
	// cannot cache a failure for everyone; the client timeout still bounds it.
	detached := context.WithoutCancel(ctx)
	ch := v.group.DoChan(key, func() (interface{}, error) {
		payload := v.fetch(detached, digits)
		if err := v.store.Set(detached, key, payload, v.ttl); err != nil {
			logger.Log.Warn("postal code cache write failed", "key", key, "error", err)
		}
		return payload, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return decode(res.Val.([]byte))
	}
}

// fetch asks the directory about digits. Any failure yields the negative marker.
func (v *Validator) fetch(ctx context.Context, digits string) []byte {
	url := fmt.Sprintf("%s/ws/%s/json/", v.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.PostalCodeLookups.WithLabelValues("error").Inc()
		return negativeMarker
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		metrics.PostalCodeLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("postal code directory unreachable", "cep", digits, "error", err)
		return negativeMarker
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.PostalCodeLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("postal code directory returned an error", "cep", digits, "status", resp.StatusCode)
		return negativeMarker
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		metrics.PostalCodeLookups.WithLabelValues("error").Inc()
		return negativeMarker
	}
	return body
}

func decode(body []byte) (*domain.Address, error) {
	var payload *viaCEPPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, domain.ErrInvalidPostalCode
	}
	if isTruthy(payload.Erro) || payload.CEP == "" && payload.Localidade == "" {
		return nil, domain.ErrInvalidPostalCode
	}
	addr := payload.Address
	return &addr, nil
}

func isTruthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	default:
		return true
	}
}
