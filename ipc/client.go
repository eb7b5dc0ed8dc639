// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/client.go
// Summary: Per-connection frame loop: read a request, dispatch, write a
// reply; disconnects on protocol error or an oversize write buffer.
// Notes: Grounded on framegrace-texelation/server/connection.go's
// connection.serve() (read-frame/switch-on-type/write-reply loop, EOF and
// malformed-frame both simply end the loop and close the fd).

package ipc

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"waytile/config"
)

type client struct {
	conn   net.Conn
	target CommandTarget
	subs   *subscriptions
	log    zerolog.Logger

	writeMu  sync.Mutex
	buffered int
}

func newClient(conn net.Conn, target CommandTarget, subs *subscriptions, log zerolog.Logger) *client {
	return &client{conn: conn, target: target, subs: subs, log: log}
}

func (c *client) serve() {
	defer c.subs.remove(c)
	for {
		t, payload, err := ReadMessage(c.conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Debug().Err(err).Msg("ipc: client disconnected on read error")
			}
			return
		}
		if err := c.handle(t, payload); err != nil {
			c.log.Warn().Err(err).Msg("ipc: client disconnected on write error")
			return
		}
	}
}

func (c *client) handle(t MessageType, payload []byte) error {
	switch t {
	case TypeCommand:
		results := Execute(string(payload), c.target)
		body, _ := json.Marshal(results)
		return c.reply(TypeCommand, body)

	case TypeSubscribe:
		var events []string
		if err := json.Unmarshal(payload, &events); err != nil {
			// spec.md §7 edge case 4: malformed SUBSCRIBE payload
			// disconnects the client outright.
			return err
		}
		c.subs.add(c, events)
		return c.reply(TypeSubscribe, []byte(`{"success":true}`))

	case TypeGetVersion:
		body, _ := json.Marshal(versionReply())
		return c.reply(TypeGetVersion, body)

	case TypeRunBinding:
		modifier, keycode, err := DecodeKeyEvent(payload)
		if err != nil {
			// Malformed key-event frame: same treatment as a malformed
			// SUBSCRIBE payload above — the client is speaking the
			// protocol wrong, so the connection ends.
			return err
		}
		handled := c.target.HandleKey(config.ModifierMask(modifier), keycode)
		body, _ := json.Marshal(map[string]bool{"handled": handled})
		return c.reply(TypeRunBinding, body)

	default:
		// GET_WORKSPACES / GET_OUTPUTS / GET_TREE / GET_BINDING_MODES /
		// GET_BINDING_STATE are answered by the caller's tree-to-JSON
		// adapter; this package only owns framing and the command
		// grammar, so unrecognized-here types without a handler
		// registered get an empty-but-well-formed reply rather than a
		// disconnect.
		return c.reply(t, []byte("{}"))
	}
}

func (c *client) reply(t MessageType, body []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.buffered += len(body)
	if c.buffered > MaxClientWriteBuffer {
		return errors.New("ipc: client write buffer exceeded 4MB, disconnecting")
	}
	err := WriteMessage(c.conn, t, body)
	c.buffered = 0
	return err
}

func versionReply() map[string]any {
	return map[string]any{
		"major":                1,
		"minor":                0,
		"patch":                0,
		"human_readable":       "waytile 1.0.0",
		"loaded_config_file_name": "",
	}
}
