package client

import (
	"strconv"
	"time"

	"github.com/lubluniky/cent-client-go/internal/signing"
)

// GenerateAPISign signs the encoded data field of an API request with
// secret. Execute calls this with the configured secret; it is exported for
// callers that build requests themselves.
func (c *Client) GenerateAPISign(secret, encodedData string) (string, error) {
	return c.sign(c.HashAlgorithm(), secret, encodedData)
}

// GenerateToken returns the connection token a browser client sends along
// with user, timestamp and info when it connects. info is usually empty or a
// JSON string with extra connection information.
func (c *Client) GenerateToken(secret, user, timestamp, info string) (string, error) {
	return c.sign(c.HashAlgorithm(), secret, user, timestamp, info)
}

// GenerateChannelSign returns the sign that proves a client connection may
// subscribe to a private channel.
func (c *Client) GenerateChannelSign(secret, client, channel, info string) (string, error) {
	return c.sign(c.HashAlgorithm(), secret, client, channel, info)
}

// CheckToken reports whether token is the valid connection token for the
// given parameters. The comparison is constant time.
func (c *Client) CheckToken(secret, user, timestamp, info, token string) (bool, error) {
	want, err := c.GenerateToken(secret, user, timestamp, info)
	if err != nil {
		return false, err
	}
	return signing.Equal(want, token), nil
}

// CheckChannelSign reports whether sign is valid for a private channel
// subscription. The comparison is constant time.
func (c *Client) CheckChannelSign(secret, client, channel, info, sign string) (bool, error) {
	want, err := c.GenerateChannelSign(secret, client, channel, info)
	if err != nil {
		return false, err
	}
	return signing.Equal(want, sign), nil
}

func (c *Client) sign(algorithm, secret string, parts ...string) (string, error) {
	return signing.SignStrings(secret, algorithm, parts...)
}

// Timestamp formats t as unix seconds, the form the server expects in
// connection parameters.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ConnectCredentials are the connection parameters a backend hands to a
// browser client.
type ConnectCredentials struct {
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
	Info      string `json:"info"`
	Token     string `json:"token"`
}

// ConnectCredentials builds signed connection parameters for user at now,
// using the client's own secret.
func (c *Client) ConnectCredentials(user, info string, now time.Time) (*ConnectCredentials, error) {
	cfg := c.snapshot()
	ts := Timestamp(now)
	token, err := c.sign(cfg.hashAlgorithm, cfg.secret, user, ts, info)
	if err != nil {
		return nil, err
	}
	return &ConnectCredentials{
		User:      user,
		Timestamp: ts,
		Info:      info,
		Token:     token,
	}, nil
}

// ChannelAuth is the per-channel entry of a private channel auth response.
type ChannelAuth struct {
	Sign string `json:"sign"`
	Info string `json:"info"`
}

// PrivateChannelAuth signs each of channels for the connection clientID,
// using the client's own secret. The result is keyed by channel and can be
// written directly as the JSON response to the browser client's private
// channel auth request.
func (c *Client) PrivateChannelAuth(clientID string, channels []string, info string) (map[string]ChannelAuth, error) {
	cfg := c.snapshot()
	out := make(map[string]ChannelAuth, len(channels))
	for _, ch := range channels {
		sign, err := c.sign(cfg.hashAlgorithm, cfg.secret, clientID, ch, info)
		if err != nil {
			return nil, err
		}
		out[ch] = ChannelAuth{Sign: sign, Info: info}
	}
	return out, nil
}
