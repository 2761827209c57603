package services

import (
	"context"
	"fmt"
	"io"

	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/domain"
	"github.com/mcompose/mcc/internal/core/ports"
)

func testConfig() *config.Config {
	return &config.Config{
		Name: "name",
		Host: "0.0.0.0",
		Port: 25565,
		Server: config.Server{
			Type:    "vanilla",
			Version: "1.17.1",
		},
		World: config.World{
			Name:       "world",
			Gamemode:   "survival",
			Difficulty: "easy",
		},
	}
}

// fakeRuntime is a scriptable ports.ContainerRuntime that records every
// call it receives.
type fakeRuntime struct {
	inspection domain.Inspection
	found      bool
	inspectErr error

	pullErr   error
	createErr error
	startErr  error
	stopErr   error
	removeErr error

	pulled    []string
	created   []createCall
	started   []string
	stopped   []string
	removed   []string
	inspected []string
}

type createCall struct {
	name string
	opts ports.CreateOptions
}

func (r *fakeRuntime) PullImage(_ context.Context, image string, tag string) error {
	r.pulled = append(r.pulled, fmt.Sprintf("%s:%s", image, tag))
	return r.pullErr
}

func (r *fakeRuntime) CreateContainer(_ context.Context, name string, opts ports.CreateOptions) error {
	r.created = append(r.created, createCall{name: name, opts: opts})
	return r.createErr
}

func (r *fakeRuntime) StartContainer(_ context.Context, name string) error {
	r.started = append(r.started, name)
	return r.startErr
}

func (r *fakeRuntime) StopContainer(_ context.Context, name string) error {
	r.stopped = append(r.stopped, name)
	return r.stopErr
}

func (r *fakeRuntime) RemoveContainer(_ context.Context, name string) error {
	r.removed = append(r.removed, name)
	return r.removeErr
}

func (r *fakeRuntime) InspectContainer(_ context.Context, name string) (domain.Inspection, bool, error) {
	r.inspected = append(r.inspected, name)
	return r.inspection, r.found, r.inspectErr
}

// runtimeWithState returns a fakeRuntime whose inspection reports the
// given lifecycle phase and health.
func runtimeWithState(status string, health string) *fakeRuntime {
	return &fakeRuntime{
		found:      true,
		inspection: domain.Inspection{State: &domain.ProcessState{Status: status, Health: health}},
	}
}

// fakeFS is an in-memory ports.Filesystem. Canonicalize succeeds only
// for registered paths, mirroring the real adapter's existence check.
type fakeFS struct {
	dirs      map[string]bool
	files     map[string]string
	listing   map[string][]string
	canonical map[string]string

	madeDirs []string
	deleted  []string
	copies   []fileCopy
	writeErr error
}

type fileCopy struct {
	src string
	dst string
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs:      map[string]bool{},
		files:     map[string]string{},
		listing:   map[string][]string{},
		canonical: map[string]string{},
	}
}

func (f *fakeFS) Canonicalize(path string) (string, error) {
	if resolved, ok := f.canonical[path]; ok {
		return resolved, nil
	}
	return "", fmt.Errorf("no such path %s", path)
}

func (f *fakeFS) DirExists(path string) bool { return f.dirs[path] }

func (f *fakeFS) MakeDir(path string) error {
	f.madeDirs = append(f.madeDirs, path)
	f.dirs[path] = true
	return nil
}

func (f *fakeFS) ListDir(path string) ([]string, error) { return f.listing[path], nil }

func (f *fakeFS) FileExists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) ReadFile(path string) (string, error) {
	contents, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no such file %s", path)
	}
	return contents, nil
}

func (f *fakeFS) WriteFile(path string, contents string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = contents
	return nil
}

func (f *fakeFS) CopyFile(src string, dst string) error {
	f.copies = append(f.copies, fileCopy{src: src, dst: dst})
	return nil
}

func (f *fakeFS) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

// fakeSession is a scriptable ports.ConsoleSession.
type fakeSession struct {
	responses map[string]string
	execErr   error
	executed  []string
	closed    bool
}

func (s *fakeSession) Execute(command string) (string, error) {
	s.executed = append(s.executed, command)
	if s.execErr != nil {
		return "", s.execErr
	}
	return s.responses[command], nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeDialer struct {
	session *fakeSession
	err     error
	dialed  []string
}

func (d *fakeDialer) Dial(host string, port string) (ports.ConsoleSession, error) {
	d.dialed = append(d.dialed, host+":"+port)
	if d.err != nil {
		return nil, d.err
	}
	return d.session, nil
}

// scriptReader replays a fixed sequence of input events. Once the
// script runs out it reports end of input.
type scriptReader struct {
	events  []inputEvent
	prompts []string
}

type inputEvent struct {
	line string
	err  error
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.events) == 0 {
		return "", io.EOF
	}
	event := r.events[0]
	r.events = r.events[1:]
	return event.line, event.err
}
