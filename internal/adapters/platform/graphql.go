package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/okian/zoneprofile/internal/domain/model"
)

// ProfileQuery selects the profile header fields, the highest project level
// transaction, the module XP aggregate and every skill transaction ordered by
// amount descending.
const ProfileQuery = `{
  user {
    login
    firstName
    lastName
    totalDown
    totalUp
    auditRatio
    transactions(
      where: { _and: [{ type: { _eq: "level" } }, { object: { type: { _eq: "project" } } }] }
      limit: 1
      order_by: { amount: desc }
    ) {
      amount
    }
    totalXp: transactions_aggregate(
      where: { _and: [{ type: { _eq: "xp" } }, { event: { object: { name: { _eq: "Module" } } } }] }
    ) {
      aggregate {
        sum {
          amount
        }
      }
    }
  }
  skills: transaction(
    where: { type: { _like: "skill%" } }
    order_by: [{ amount: desc }]
  ) {
    type
    amount
  }
}`

// ProfileFetcher loads a user's profile with a bearer token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (model.Profile, error)
}

// GraphQLClient queries the GraphQL data endpoint.
type GraphQLClient struct {
	http *HTTPClient
	url  string
}

// NewGraphQLClient creates a client for the GraphQL endpoint at url.
func NewGraphQLClient(url string, opts ...Option) *GraphQLClient {
	return &GraphQLClient{http: newHTTPClient(opts...), url: url}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

// Envelope is the JSON shape returned by the data service.
type Envelope struct {
	Data   *ProfileData   `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// GraphQLError is one entry of the top-level errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// ProfileData is the "data" member of the envelope.
type ProfileData struct {
	User   []UserRecord     `json:"user"`
	Skills []model.RawSkill `json:"skills"`
}

// UserRecord mirrors one element of data.user.
type UserRecord struct {
	Login        string   `json:"login"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	TotalUp      *float64 `json:"totalUp"`
	TotalDown    *float64 `json:"totalDown"`
	AuditRatio   *float64 `json:"auditRatio"`
	Transactions []struct {
		Amount float64 `json:"amount"`
	} `json:"transactions"`
	TotalXP struct {
		Aggregate struct {
			Sum struct {
				Amount *float64 `json:"amount"`
			} `json:"sum"`
		} `json:"aggregate"`
	} `json:"totalXp"`
}

// FetchProfile posts ProfileQuery and validates the response. A usable
// response that also carries GraphQL errors is returned with Warnings set.
func (c *GraphQLClient) FetchProfile(ctx context.Context, token string) (model.Profile, error) {
	status, body, err := c.http.postJSON(ctx, c.url, graphqlRequest{Query: ProfileQuery}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("%w: %w", ErrDataFetchFailed, err)
	}
	if !isSuccess(status) {
		return model.Profile{}, fmt.Errorf("%w: status %d", ErrDataFetchFailed, status)
	}
	return DecodeProfile(ctx, body)
}

// DecodeProfile turns a raw envelope into a validated Profile.
func DecodeProfile(ctx context.Context, body []byte) (model.Profile, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	warnings := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		if msg := strings.TrimSpace(e.Message); msg != "" {
			warnings = append(warnings, msg)
		}
	}

	if env.Data == nil || len(env.Data.User) == 0 {
		if len(warnings) > 0 {
			return model.Profile{}, fmt.Errorf("%w: %s", ErrMalformedResponse, strings.Join(warnings, "; "))
		}
		return model.Profile{}, fmt.Errorf("%w: response has no user", ErrMalformedResponse)
	}

	stats, err := env.Data.User[0].stats()
	if err != nil {
		return model.Profile{}, err
	}

	profile := model.Profile{
		Stats:  stats,
		Skills: model.NormalizeSkills(ctx, env.Data.Skills),
	}
	if len(warnings) > 0 {
		profile.Warnings = warnings
	}
	return profile, nil
}

// stats converts the record, requiring the counters the charts depend on.
func (u UserRecord) stats() (model.ProfileStats, error) {
	if strings.TrimSpace(u.Login) == "" {
		return model.ProfileStats{}, fmt.Errorf("%w: user has no login", ErrMalformedResponse)
	}
	if u.TotalUp == nil || u.TotalDown == nil || u.AuditRatio == nil {
		return model.ProfileStats{}, fmt.Errorf("%w: user is missing audit fields", ErrMalformedResponse)
	}

	s := model.ProfileStats{
		Login:      u.Login,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		TotalUp:    roundCount(*u.TotalUp),
		TotalDown:  roundCount(*u.TotalDown),
		AuditRatio: *u.AuditRatio,
	}
	// The query already asks for the single highest level; take the max in
	// case the service ignores limit/order_by.
	for _, t := range u.Transactions {
		s.Level = max(s.Level, roundCount(t.Amount))
	}
	if xp := u.TotalXP.Aggregate.Sum.Amount; xp != nil {
		s.TotalXP = roundCount(*xp)
	}
	if err := s.Validate(); err != nil {
		return model.ProfileStats{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return s, nil
}

func roundCount(v float64) int64 {
	return int64(math.Round(v))
}
