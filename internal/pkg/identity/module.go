package identity

import (
	"go.uber.org/fx"

	"github.com/rewardhub/rewardhub/internal/config"
)

// Module provides token verification via fx.
var Module = fx.Options(
	fx.Provide(newVerifier),
)

type verifierParams struct {
	fx.In

	Config *config.Config
}

func newVerifier(p verifierParams) *Verifier {
	return NewVerifier(p.Config.AuthSecret)
}
