// Package x talks to the X API v2 on behalf of linked accounts.
package x

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/fields"
	"github.com/michimani/gotwi/tweet/managetweet"
	tweettypes "github.com/michimani/gotwi/tweet/managetweet/types"
	"github.com/michimani/gotwi/user/userlookup"
	usertypes "github.com/michimani/gotwi/user/userlookup/types"

	"github.com/maheshrc27/autopost/internal/engine"
)

type Profile struct {
	ID          string
	DisplayName string
	Username    string
	Avatar      string
}

// Publisher posts on behalf of a user holding an OAuth2 user access token.
type Publisher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPublisher(timeout time.Duration, logger *slog.Logger) *Publisher {
	return NewPublisherWithClient(&http.Client{Timeout: timeout}, logger)
}

func NewPublisherWithClient(httpClient *http.Client, logger *slog.Logger) *Publisher {
	return &Publisher{httpClient: httpClient, logger: logger}
}

func (p *Publisher) client(accessToken string) (*gotwi.Client, error) {
	if accessToken == "" {
		return nil, errors.New("empty access token")
	}

	c, err := gotwi.NewClientWithAccessToken(&gotwi.NewClientWithAccessTokenInput{
		AccessToken: accessToken,
		HTTPClient:  p.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create x client: %w", err)
	}
	return c, nil
}

// PublishUnit creates one post. Media references are not uploaded to X, only
// the text and the reply link are sent.
func (p *Publisher) PublishUnit(ctx context.Context, credential string, unit engine.Unit) (string, error) {
	c, err := p.client(credential)
	if err != nil {
		return "", err
	}

	input := &tweettypes.CreateInput{
		Text: gotwi.String(unit.Text),
	}
	if unit.ReplyTo != "" {
		input.Reply = &tweettypes.CreateInputReply{InReplyToTweetID: unit.ReplyTo}
	}
	if len(unit.Media) > 0 {
		p.logger.Warn("media upload is not supported, sending text only", "media", len(unit.Media))
	}

	res, err := managetweet.Create(ctx, c, input)
	if err != nil {
		return "", err
	}

	id := gotwi.StringValue(res.Data.ID)
	if id == "" {
		return "", errors.New("x returned no post id")
	}
	return id, nil
}

// GetMe fetches the profile of the account that owns the token.
func (p *Publisher) GetMe(ctx context.Context, accessToken string) (*Profile, error) {
	c, err := p.client(accessToken)
	if err != nil {
		return nil, err
	}

	res, err := userlookup.GetMe(ctx, c, &usertypes.GetMeInput{
		UserFields: fields.UserFieldList{fields.UserFieldProfileImageUrl},
	})
	if err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}

	profile := &Profile{
		ID:          gotwi.StringValue(res.Data.ID),
		DisplayName: gotwi.StringValue(res.Data.Name),
		Username:    gotwi.StringValue(res.Data.Username),
		Avatar:      gotwi.StringValue(res.Data.ProfileImageURL),
	}
	if profile.ID == "" {
		return nil, errors.New("x returned no user id")
	}
	return profile, nil
}
