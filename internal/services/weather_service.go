// weather_service.go
//
// A scalable, high performance drop-in replacement for the agri-monitor nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fieldwise.
// fieldwise is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fieldwise is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fieldwise.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/localnerve/fieldwise/internal/config"
)

// ErrWeatherKeyMissing means the server was deployed without WEATHERAPI_KEY.
var ErrWeatherKeyMissing = errors.New("server missing WEATHERAPI_KEY")

// WeatherUpstreamError carries a non-OK upstream status and body so the
// handler can forward them verbatim.
type WeatherUpstreamError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *WeatherUpstreamError) Error() string {
	return fmt.Sprintf("weather upstream returned %d", e.StatusCode)
}

type weatherCacheEntry struct {
	ts   time.Time
	data json.RawMessage
}

// WeatherService proxies current-conditions lookups to weatherapi.com with a
// small time-boxed in-process cache. The cache is keyed by lowercased
// location and is best-effort only; expired entries are replaced on demand.
type WeatherService struct {
	apiKey  string
	baseURL string
	ttl     time.Duration
	client  *http.Client

	mu    sync.Mutex
	cache map[string]weatherCacheEntry
	now   func() time.Time
}

// NewWeatherService builds a WeatherService from configuration.
func NewWeatherService(cfg *config.Config) *WeatherService {
	return &WeatherService{
		apiKey:  cfg.WeatherAPIKey,
		baseURL: strings.TrimRight(cfg.WeatherAPIURL, "/"),
		ttl:     cfg.WeatherCacheTTL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[string]weatherCacheEntry),
		now:     time.Now,
	}
}

// Current returns the current conditions for a location and whether the
// response was served from cache.
func (s *WeatherService) Current(location string) (json.RawMessage, bool, error) {
	if s.apiKey == "" {
		return nil, false, ErrWeatherKeyMissing
	}

	key := strings.ToLower(strings.TrimSpace(location))

	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && s.now().Sub(entry.ts) < s.ttl {
		return entry.data, true, nil
	}

	weatherURL := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(location))

	resp, err := s.client.Get(weatherURL)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, &WeatherUpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	s.mu.Lock()
	s.cache[key] = weatherCacheEntry{ts: s.now(), data: body}
	s.mu.Unlock()

	return body, false, nil
}
