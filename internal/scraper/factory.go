package scraper

import (
	"fmt"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/sessionMaker"

	"github.com/ethiodata/telecorpus/internal/config"
)

// NewProtoClient creates the underlying gotgproto client from an
// exported session string. The session is held in memory; generating
// and exporting the string is the auth tool's job.
func NewProtoClient(cfg *config.Config) (*gotgproto.Client, error) {
	if cfg.TGApiID == 0 || cfg.TGApiHash == "" {
		return nil, fmt.Errorf("telegram api credentials missing")
	}
	if cfg.TGSessionStr == "" {
		return nil, fmt.Errorf("telegram session string missing")
	}

	client, err := gotgproto.NewClient(
		cfg.TGApiID,
		cfg.TGApiHash,
		gotgproto.ClientTypePhone(""), // empty = use session
		&gotgproto.ClientOpts{
			Session:          sessionMaker.StringSession(cfg.TGSessionStr),
			DisableCopyright: true,
			InMemory:         true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	return client, nil
}
