// Package travelapi is a candidate source backed by a structured travel
// offers API. Calls are client-side rate limited and retried on 429 and
// transient 5xx, honoring Retry-After when provided.
package travelapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"holiday_planner/internal/domain"
)

type Client struct {
	name string
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(name, base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		name: name,
		base: base,
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Name() string { return c.name }

// ---- wire types ----

type flightDTO struct {
	Airline    string  `json:"airline"`
	DepartTime string  `json:"depart_time"` // RFC 3339
	ArriveTime string  `json:"arrive_time"`
	Cost       float64 `json:"cost"`
	BookingRef string  `json:"booking_ref"`
}

type hotelDTO struct {
	Name           string  `json:"name"`
	CostPerNight   float64 `json:"cost_per_night"`
	DistanceKM     float64 `json:"distance_from_poi_km"`
	FamilyFriendly bool    `json:"family_friendly"`
	BookingRef     string  `json:"booking_ref"`
}

// ---- domain.CandidateSource ----

func (c *Client) Flights(ctx context.Context, w domain.TravelWindow, it domain.TripIntent) ([]domain.FlightCandidate, error) {
	var dtos []flightDTO
	if err := c.get(ctx, c.offersURL("flights", w, it), &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.FlightCandidate, 0, len(dtos))
	for _, d := range dtos {
		dep, err := time.Parse(time.RFC3339, d.DepartTime)
		if err != nil {
			return nil, fmt.Errorf("bad depart_time %q: %w", d.DepartTime, err)
		}
		arr, err := time.Parse(time.RFC3339, d.ArriveTime)
		if err != nil {
			return nil, fmt.Errorf("bad arrive_time %q: %w", d.ArriveTime, err)
		}
		out = append(out, domain.FlightCandidate{
			Airline:    d.Airline,
			DepartTime: dep,
			ArriveTime: arr,
			Cost:       d.Cost,
			Source:     c.name,
			BookingRef: d.BookingRef,
		})
	}
	return out, nil
}

func (c *Client) Hotels(ctx context.Context, w domain.TravelWindow, it domain.TripIntent) ([]domain.HotelCandidate, error) {
	var dtos []hotelDTO
	if err := c.get(ctx, c.offersURL("hotels", w, it), &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.HotelCandidate, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.HotelCandidate{
			Name:           d.Name,
			CostPerNight:   d.CostPerNight,
			DistanceKM:     d.DistanceKM,
			FamilyFriendly: d.FamilyFriendly,
			Source:         c.name,
			BookingRef:     d.BookingRef,
		})
	}
	return out, nil
}

func (c *Client) offersURL(kind string, w domain.TravelWindow, it domain.TripIntent) string {
	q := url.Values{}
	q.Set("destination", it.Destination)
	q.Set("check_in", w.StartDate.Format("2006-01-02"))
	q.Set("check_out", w.EndDate.Format("2006-01-02"))
	q.Set("travelers", strconv.Itoa(it.Travelers))
	return fmt.Sprintf("%s/v1/%s?%s", c.base, kind, q.Encode())
}

// ---- internals ----

var (
	ErrNotFound     = errors.New("travelapi: not found")
	ErrUnauthorized = errors.New("travelapi: unauthorized")
	ErrForbidden    = errors.New("travelapi: forbidden")
)

// get performs a GET with client-side rate limiting, retries, and JSON
// decode into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "holiday-planner/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles each attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter from crypto/rand, which is safe under concurrent source calls.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
