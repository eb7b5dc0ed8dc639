// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/server.go
// Summary: Unix-socket server speaking the i3 binary framing (spec.md §4.F,
// §6 "External interfaces").
// Notes: Accept-loop/waitgroup/quit-channel shape grounded on
// framegrace-texelation/server/server.go's Server (os.RemoveAll + net.Listen
// "unix" + per-connection goroutine under a sync.WaitGroup, Stop draining via
// a context deadline). Socket-path resolution (XDG_RUNTIME_DIR, SWAYSOCK
// override, I3SOCK/SWAYSOCK export) and the SO_PEERCRED credential check are
// specific to spec.md §6 and have no teacher analogue beyond "use
// golang.org/x/sys/unix for a raw syscall", the pattern
// bnema-dumber/cmd/dumber/main_unix.go uses for unix.Getrlimit.

package ipc

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// MaxClientWriteBuffer disconnects a client whose outgoing queue grows past
// this size (spec.md §5: "IPC clients whose write buffer exceeds 4 MB are
// disconnected").
const MaxClientWriteBuffer = 4 << 20

// SocketPath resolves the listening socket path per spec.md §6: prefer
// $XDG_RUNTIME_DIR, fall back to /tmp; if $SWAYSOCK is set and does not
// already exist on disk, use that path instead.
func SocketPath() string {
	if sway := os.Getenv("SWAYSOCK"); sway != "" {
		if _, err := os.Stat(sway); os.IsNotExist(err) {
			return sway
		}
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = "/tmp"
	}
	return fmt.Sprintf("%s/miracle-wm-ipc.%d.%d.sock", dir, os.Getuid(), os.Getpid())
}

// ExportEnv sets I3SOCK and SWAYSOCK to path in the current process
// environment so child processes (spawned via `exec` commands) inherit the
// socket location, per spec.md §6.
func ExportEnv(path string) {
	os.Setenv("I3SOCK", path)
	os.Setenv("SWAYSOCK", path)
}

// Server listens on a Unix domain socket and dispatches frames to target.
type Server struct {
	path    string
	target  CommandTarget
	log     zerolog.Logger
	subs    *subscriptions

	listener net.Listener
	quit     chan struct{}
	wg       sync.WaitGroup
}

// NewServer creates a Server bound to the i3-ipc path resolution rules,
// dispatching COMMAND scripts to target.
func NewServer(target CommandTarget, log zerolog.Logger) *Server {
	return &Server{
		path:   SocketPath(),
		target: target,
		log:    log,
		subs:   newSubscriptions(),
		quit:   make(chan struct{}),
	}
}

// Path returns the resolved socket path this server listens on.
func (s *Server) Path() string { return s.path }

// Broadcast sends an event frame named name to every subscribed client, for
// a WorkspaceObserver/ModeObserver to call when it fires (spec.md §2).
func (s *Server) Broadcast(t MessageType, name string, payload any) {
	s.subs.Broadcast(t, name, payload)
}

// Start unlinks any stale socket, binds, exports the env vars, and begins
// accepting connections on a background goroutine.
func (s *Server) Start() error {
	if err := os.RemoveAll(s.path); err != nil {
		return err
	}
	l, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	s.listener = l
	ExportEnv(s.path)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				s.log.Warn().Err(err).Msg("ipc: accept failed")
				continue
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			c := newClient(conn, s.target, s.subs, s.log)
			c.serve()
		}()
	}
}

// Stop closes the listener and waits (bounded by ctx) for every client
// goroutine to exit.
func (s *Server) Stop(ctx context.Context) error {
	close(s.quit)
	if s.listener != nil {
		_ = s.listener.Close()
	}
	_ = os.Remove(s.path)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PeerCredentials returns the connecting process's uid/pid via SO_PEERCRED.
// The server's accept loop does not call it; connections are accepted
// without a credential check.
func PeerCredentials(conn *net.UnixConn) (uid, pid int, err error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, 0, err
	}
	var cred *unix.Ucred
	var sysErr error
	err = raw.Control(func(fd uintptr) {
		cred, sysErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil {
		return 0, 0, err
	}
	if sysErr != nil {
		return 0, 0, sysErr
	}
	return int(cred.Uid), int(cred.Pid), nil
}
