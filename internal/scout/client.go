// Package scout is a read-only client for the FTC Scout REST API. The portal
// treats it as best-effort: lookups that cannot complete degrade to an
// "unverified" answer instead of failing the caller.
package scout

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public FTC Scout endpoint.
const DefaultBaseURL = "https://api.ftcscout.org/rest/v1"

// Verification is the outcome of a team-registry lookup.
type Verification int

const (
	// TeamVerified means the registry knows the team number.
	TeamVerified Verification = iota
	// TeamUnknown means the registry answered and does not know the team.
	TeamUnknown
	// VerifyUnavailable means the registry could not be consulted; callers
	// must treat this as a soft warning, not a failure.
	VerifyUnavailable
)

type Client struct {
	http *resty.Client
}

// NewClient creates a scout client against baseURL, or DefaultBaseURL when
// empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// TeamDetails is the registry's record for a team.
type TeamDetails struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	City         string `json:"city"`
	StateProv    string `json:"stateProv"`
	Country      string `json:"country"`
	RookieYear   int    `json:"rookieYear"`
	Website      string `json:"website"`
}

// QuickStats is a season performance summary for a team.
type QuickStats struct {
	Season int     `json:"season"`
	OPR    float64 `json:"opr"`
	NPR    float64 `json:"npr"`
	TPR    float64 `json:"tpr"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ties   int     `json:"ties"`
	Rank   float64 `json:"rank"`
}

// Event is a competition a team is registered for.
type Event struct {
	EventCode string `json:"eventCode"`
	Season    int    `json:"season"`
}

// VerifyTeam reports whether the registry knows teamNumber. A 200 response
// carrying a team number verifies the team; a 404 means the registry does not
// know it; anything else means the registry could not be consulted.
func (c *Client) VerifyTeam(ctx context.Context, teamNumber int) Verification {
	var details TeamDetails
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&details).
		Get(fmt.Sprintf("/teams/%d", teamNumber))
	if err != nil {
		log.Warn("team registry unreachable", "team", teamNumber, "err", err)
		return VerifyUnavailable
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		if details.Number == 0 {
			log.Warn("team registry returned no team data", "team", teamNumber)
			return TeamUnknown
		}
		return TeamVerified
	case http.StatusNotFound:
		return TeamUnknown
	default:
		log.Warn("team registry lookup failed", "team", teamNumber, "status", resp.StatusCode())
		return VerifyUnavailable
	}
}

// TeamDetails fetches the registry record for teamNumber.
func (c *Client) TeamDetails(ctx context.Context, teamNumber int) (*TeamDetails, error) {
	var details TeamDetails
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&details).
		Get(fmt.Sprintf("/teams/%d", teamNumber))
	if err != nil {
		return nil, fmt.Errorf("could not reach team registry: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return &details, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("team %d not found", teamNumber)
	default:
		return nil, fmt.Errorf("team registry returned status %d", resp.StatusCode())
	}
}

// QuickStats fetches the season stats summary for teamNumber. A zero season
// lets the registry pick the current one.
func (c *Client) QuickStats(ctx context.Context, teamNumber, season int) (*QuickStats, error) {
	var stats QuickStats
	req := c.http.R().SetContext(ctx).SetResult(&stats)
	if season > 0 {
		req.SetQueryParam("season", fmt.Sprintf("%d", season))
	}
	resp, err := req.Get(fmt.Sprintf("/teams/%d/quick-stats", teamNumber))
	if err != nil {
		return nil, fmt.Errorf("could not reach team registry: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return &stats, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("team %d has no stats for season %d", teamNumber, season)
	default:
		return nil, fmt.Errorf("team registry returned status %d", resp.StatusCode())
	}
}

// Events fetches the events teamNumber is registered for in season. Missing
// data comes back as an empty list.
func (c *Client) Events(ctx context.Context, teamNumber, season int) ([]Event, error) {
	var events []Event
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&events).
		Get(fmt.Sprintf("/teams/%d/events/%d", teamNumber, season))
	if err != nil {
		return nil, fmt.Errorf("could not reach team registry: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Info("no events found", "team", teamNumber, "season", season, "status", resp.StatusCode())
		return []Event{}, nil
	}
	return events, nil
}
