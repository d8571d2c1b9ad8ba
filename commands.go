package client

import (
	"context"
	"encoding/json"
)

// Publish sends data into channel. If client is non-empty it is passed along
// so the server can exclude that connection from delivery; otherwise the
// client key is omitted from the params.
func (c *Client) Publish(ctx context.Context, channel string, data any, client string) (json.RawMessage, error) {
	params := Params{
		"channel": channel,
		"data":    data,
	}
	if client != "" {
		params["client"] = client
	}
	return c.Execute(ctx, NewCommand(MethodPublish, params))
}

// Unsubscribe removes userID from channel.
func (c *Client) Unsubscribe(ctx context.Context, channel, userID string) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodUnsubscribe, Params{
		"channel": channel,
		"user":    userID,
	}))
}

// Disconnect closes all connections of userID.
func (c *Client) Disconnect(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodDisconnect, Params{
		"user": userID,
	}))
}

// Presence returns the clients currently subscribed to channel.
func (c *Client) Presence(ctx context.Context, channel string) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodPresence, Params{
		"channel": channel,
	}))
}

// History returns the recent messages kept for channel.
func (c *Client) History(ctx context.Context, channel string) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodHistory, Params{
		"channel": channel,
	}))
}

// Channels returns the active channels.
func (c *Client) Channels(ctx context.Context) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodChannels, nil))
}

// Stats returns server statistics.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	return c.Execute(ctx, NewCommand(MethodStats, nil))
}
