package config

import (
	"github.com/ncobase/blogclient/identity"
	"github.com/spf13/viper"
)

// Identity configures the Cognito user pool and the registration
// strategy.
type Identity struct {
	Cognito      *identity.CognitoConfig
	Registration string
}

func getIdentityConfig(v *viper.Viper) *Identity {
	return &Identity{
		Cognito: &identity.CognitoConfig{
			Region:       v.GetString("identity.region"),
			UserPoolID:   v.GetString("identity.user_pool_id"),
			ClientID:     v.GetString("identity.client_id"),
			ClientSecret: v.GetString("identity.client_secret"),
			Endpoint:     v.GetString("identity.endpoint"),
		},
		Registration: getStringOrDefault(v, "identity.registration", "backend"),
	}
}
