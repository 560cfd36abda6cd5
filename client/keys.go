package client

import (
	"strings"

	"github.com/bodrovis/yelpex/apierr"
	"github.com/bodrovis/yelpex/utils"
)

// Env variable names read by KeysFromEnv.
const (
	EnvConsumerKey    = "YELP_CONSUMER_KEY"
	EnvConsumerSecret = "YELP_CONSUMER_SECRET"
	EnvToken          = "YELP_TOKEN"
	EnvTokenSecret    = "YELP_TOKEN_SECRET"
)

// Keys are the OAuth 1.0a credentials of a Yelp API v2 application.
type Keys struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Validate fails with MissingAPIKeys when any credential is blank.
func (k Keys) Validate() error {
	for _, v := range []string{k.ConsumerKey, k.ConsumerSecret, k.Token, k.TokenSecret} {
		if strings.TrimSpace(v) == "" {
			return apierr.New(apierr.KindMissingAPIKeys, "")
		}
	}
	return nil
}

// KeysFromEnv reads credentials from the environment. Call
// utils.LoadDotEnv first if they live in a .env file.
func KeysFromEnv() Keys {
	return Keys{
		ConsumerKey:    utils.GetEnv(EnvConsumerKey, ""),
		ConsumerSecret: utils.GetEnv(EnvConsumerSecret, ""),
		Token:          utils.GetEnv(EnvToken, ""),
		TokenSecret:    utils.GetEnv(EnvTokenSecret, ""),
	}
}
