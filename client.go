package a2s

import (
	"context"
	"time"
)

// maxChallengeRetries bounds how many challenge-gated requests Client sends
// after obtaining the initial nonce: the first attempt with it, plus retries
// for a server that answers with a rotated challenge instead of the data.
const maxChallengeRetries = 3

// Client owns a Transport's lifecycle and layers the challenge-then-retry
// convenience (§4.3, §9) on top of Driver's raw, non-retrying operations.
// Callers who want to manage challenges themselves should use Driver
// directly instead.
type Client struct {
	transport *udpTransport
	driver    *Driver
}

// Dial connects to addr and returns a ready-to-use Client. variant selects
// which split-packet header shape the server speaks; most modern Source
// servers use Source, GoldSrc-era engines use GoldSrc.
func Dial(addr string, timeout time.Duration, variant SplitVariant) (*Client, error) {
	t, err := dialUDPTransport(addr, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{transport: t, driver: NewDriver(t, variant)}, nil
}

// Close releases the underlying socket.
func (c *Client) Close() error {
	if c.transport == nil {
		return nil
	}
	return c.transport.Close()
}

// GetInfo issues A2S_INFO and returns whichever response variant the server
// answered with.
func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	return c.driver.Info(ctx)
}

// GetPlayers performs the full A2S_PLAYER exchange: obtain a challenge, then
// request the players with it, switching to the new challenge carried in the
// server's reply whenever it answers with a rotated one.
func (c *Client) GetPlayers(ctx context.Context) (*PlayersList, error) {
	challenge, err := c.driver.PlayerChallenge(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxChallengeRetries; attempt++ {
		list, err := c.driver.Players(ctx, challenge)
		if err == nil {
			return list, nil
		}
		uh, ok := err.(*UnknownHeaderError)
		if !ok || !uh.IsChallenge() {
			return nil, err
		}
		challenge = uh.Challenge
	}
	return nil, ErrChallengeNotReceived
}

// GetRules performs the full A2S_RULES exchange, mirroring GetPlayers.
func (c *Client) GetRules(ctx context.Context) (*RulesList, error) {
	challenge, err := c.driver.RulesChallenge(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxChallengeRetries; attempt++ {
		list, err := c.driver.Rules(ctx, challenge)
		if err == nil {
			return list, nil
		}
		uh, ok := err.(*UnknownHeaderError)
		if !ok || !uh.IsChallenge() {
			return nil, err
		}
		challenge = uh.Challenge
	}
	return nil, ErrChallengeNotReceived
}
